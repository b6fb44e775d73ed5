package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookEventListQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   WebhookEventListQuery
		wantErr bool
	}{
		{name: "defaults", query: WebhookEventListQuery{Limit: 100, Offset: 0}},
		{name: "zero limit", query: WebhookEventListQuery{Limit: 0, Offset: 0}},
		{name: "max limit", query: WebhookEventListQuery{Limit: 1000, Offset: 50}},
		{name: "limit too large", query: WebhookEventListQuery{Limit: 1001}, wantErr: true},
		{name: "negative limit", query: WebhookEventListQuery{Limit: -1}, wantErr: true},
		{name: "negative offset", query: WebhookEventListQuery{Limit: 10, Offset: -5}, wantErr: true},
	}

	for _, tt := range tests {
		err := tt.query.Validate()
		if tt.wantErr && err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("%s: unexpected validation error: %v", tt.name, err)
		}
	}
}

func TestWebhookEventJSONShape(t *testing.T) {
	event := WebhookEvent{
		ID:             1,
		EventType:      "charge.success",
		Reference:      "ref_1",
		Status:         WebhookStatusPending,
		Payload:        json.RawMessage(`{"event":"charge.success"}`),
		SignatureValid: true,
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The dashboard consumes camelCase keys and a verbatim payload.
	assert.Contains(t, decoded, "eventType")
	assert.Contains(t, decoded, "signatureValid")
	assert.JSONEq(t, `{"event":"charge.success"}`, string(decoded["payload"]))
	assert.Equal(t, "null", string(decoded["error"]))
	assert.Equal(t, "null", string(decoded["responseTime"]))
}
