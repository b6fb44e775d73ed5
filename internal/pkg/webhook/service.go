package webhook

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/google/uuid"
)

const invalidSignatureError = "Invalid signature"

// Service runs the intake pipeline for incoming deliveries:
// verify -> create -> dispatch -> update.
type Service struct {
	repo       repository.WebhookEventRepository
	dispatcher *Dispatcher
	secret     string
}

// NewService creates the intake pipeline from its collaborators. An empty
// secret is allowed and makes every verification fail closed.
func NewService(repo repository.WebhookEventRepository, dispatcher *Dispatcher, secret string) *Service {
	if secret == "" {
		log.Printf("PAYSTACK_SECRET_KEY is not configured, all webhook signatures will be rejected")
	}
	return &Service{repo: repo, dispatcher: dispatcher, secret: secret}
}

// ProcessIncoming handles one delivery end to end. Every delivery is
// recorded, including those with an invalid signature, so rejected requests
// stay on the audit trail. The dispatcher is only invoked for verified
// deliveries. A returned error means the store itself failed; dispatch
// failures are reported through the result, not the error.
func (s *Service) ProcessIncoming(ctx context.Context, rawBody []byte, signatureHeader string) (*IntakeResult, error) {
	_ = ctx
	start := time.Now()

	signatureValid := VerifySignature(rawBody, signatureHeader, s.secret)
	eventType, reference := parseEnvelope(rawBody)
	log.Printf("Received %s webhook with reference %s", eventType, reference)

	payload := json.RawMessage(rawBody)
	if !json.Valid(rawBody) {
		// Non-JSON bodies are still recorded, wrapped as a JSON string so
		// the event log stays marshalable.
		payload, _ = json.Marshal(string(rawBody))
	}

	event := &models.WebhookEvent{
		EventType:      eventType,
		Reference:      reference,
		Status:         models.WebhookStatusPending,
		Payload:        payload,
		SignatureValid: signatureValid,
	}
	if !signatureValid {
		event.Status = models.WebhookStatusFailed
		msg := invalidSignatureError
		event.Error = &msg
	}
	if err := s.repo.Create(event); err != nil {
		return nil, err
	}

	if !signatureValid {
		log.Printf("Invalid signature for webhook %s", reference)
		return &IntakeResult{Event: event, SignatureValid: false}, nil
	}

	dispatch := s.dispatcher.Dispatch(event)
	elapsed := time.Since(start).Milliseconds()

	status := models.WebhookStatusProcessed
	if !dispatch.Success {
		status = models.WebhookStatusFailed
	}
	update := repository.WebhookEventUpdate{
		Status:       &status,
		ResponseTime: &elapsed,
	}
	if dispatch.Error != "" {
		update.Error = &dispatch.Error
	}
	updated, err := s.repo.Update(event.ID, update)
	if err != nil {
		return nil, err
	}

	return &IntakeResult{
		Event:          updated,
		SignatureValid: true,
		Dispatch:       dispatch,
		ResponseTime:   elapsed,
	}, nil
}

// parseEnvelope pulls the event type and provider reference out of the raw
// body. Malformed bodies are tolerated: the delivery is still recorded under
// an unknown type with a generated reference.
func parseEnvelope(rawBody []byte) (eventType, reference string) {
	var envelope paystackEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err == nil {
		eventType = envelope.Event
		reference = envelope.Data.Reference
	}
	if eventType == "" {
		eventType = "unknown"
	}
	if reference == "" {
		reference = "unknown-" + uuid.NewString()
	}
	return eventType, reference
}
