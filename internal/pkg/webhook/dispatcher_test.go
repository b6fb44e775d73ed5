package webhook

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ManuelReschke/HookFox/app/models"
)

func testEvent(eventType string) *models.WebhookEvent {
	return &models.WebhookEvent{
		EventType: eventType,
		Reference: "ref_1",
		Payload:   json.RawMessage(`{"event":"` + eventType + `","data":{"reference":"ref_1","amount":5000,"currency":"NGN"}}`),
	}
}

func TestDispatch_RegisteredHandler(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Register("charge.success", func(event *models.WebhookEvent) error {
		calls++
		return nil
	})

	result := d.Dispatch(testEvent("charge.success"))
	if !result.Success || result.Error != "" {
		t.Fatalf("expected clean success, got %+v", result)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestDispatch_HandlerError(t *testing.T) {
	d := NewDispatcher()
	d.Register("charge.failed", func(event *models.WebhookEvent) error {
		return errors.New("downstream unavailable")
	})

	result := d.Dispatch(testEvent("charge.failed"))
	if result.Success {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Error != "downstream unavailable" {
		t.Fatalf("unexpected error message: %q", result.Error)
	}
}

func TestDispatch_HandlerPanicIsRecovered(t *testing.T) {
	d := NewDispatcher()
	d.Register("invoice.update", func(event *models.WebhookEvent) error {
		panic("nil map write")
	})

	result := d.Dispatch(testEvent("invoice.update"))
	if result.Success {
		t.Fatalf("expected panic to become a failed result, got %+v", result)
	}
	if !strings.Contains(result.Error, "nil map write") {
		t.Fatalf("expected panic message in error, got %q", result.Error)
	}
}

func TestDispatch_UnknownTypeIsAcknowledged(t *testing.T) {
	d := NewDispatcher()

	result := d.Dispatch(testEvent("refund.created"))
	if !result.Success {
		t.Fatalf("unknown event types must not fail, got %+v", result)
	}
	if !strings.Contains(result.Error, "refund.created") || !strings.Contains(result.Error, "acknowledged") {
		t.Fatalf("expected acknowledgment note, got %q", result.Error)
	}
}

func TestDefaultDispatcher_HandlesKnownTypes(t *testing.T) {
	d := DefaultDispatcher()

	for _, eventType := range []string{
		"charge.success",
		"transfer.success",
		"subscription.create",
		"charge.failed",
		"invoice.update",
	} {
		result := d.Dispatch(testEvent(eventType))
		if !result.Success || result.Error != "" {
			t.Fatalf("expected %s to be handled, got %+v", eventType, result)
		}
	}
}

func TestDefaultDispatcher_MalformedPayloadFails(t *testing.T) {
	d := DefaultDispatcher()
	event := testEvent("charge.success")
	event.Payload = json.RawMessage(`{"event":`)

	result := d.Dispatch(event)
	if result.Success {
		t.Fatalf("expected extraction failure to fail dispatch, got %+v", result)
	}
}
