package webhook

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ManuelReschke/HookFox/app/models"
)

// paystackEnvelope is the outer shape every Paystack delivery shares. Fields
// the handlers do not read are left in the raw payload.
type paystackEnvelope struct {
	Event string       `json:"event"`
	Data  paystackData `json:"data"`
}

type paystackData struct {
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Reference        string `json:"reference"`
	SubscriptionCode string `json:"subscription_code"`
}

// DefaultDispatcher builds the registry for the Paystack event types this
// service acts on. The side effects behind each handler (order updates,
// customer notification, inventory) live in external collaborators; the
// handlers here extract and log the fields those collaborators need.
func DefaultDispatcher() *Dispatcher {
	d := NewDispatcher()
	d.Register("charge.success", handleSuccessfulPayment)
	d.Register("transfer.success", handleSuccessfulTransfer)
	d.Register("subscription.create", handleSubscriptionCreated)
	d.Register("charge.failed", handleFailedPayment)
	d.Register("invoice.update", handleInvoiceUpdate)
	return d
}

func handleSuccessfulPayment(event *models.WebhookEvent) error {
	data, err := extractData(event)
	if err != nil {
		return fmt.Errorf("failed to process payment: %w", err)
	}
	// Paystack amounts are in the currency subunit.
	log.Printf("Processing successful payment: %s for %d %s", data.Reference, data.Amount/100, data.Currency)
	return nil
}

func handleSuccessfulTransfer(event *models.WebhookEvent) error {
	data, err := extractData(event)
	if err != nil {
		return fmt.Errorf("failed to process transfer: %w", err)
	}
	log.Printf("Processing successful transfer: %s", data.Reference)
	return nil
}

func handleSubscriptionCreated(event *models.WebhookEvent) error {
	data, err := extractData(event)
	if err != nil {
		return fmt.Errorf("failed to process subscription: %w", err)
	}
	log.Printf("Processing subscription creation: %s", data.SubscriptionCode)
	return nil
}

func handleFailedPayment(event *models.WebhookEvent) error {
	data, err := extractData(event)
	if err != nil {
		return fmt.Errorf("failed to process failed payment: %w", err)
	}
	log.Printf("Processing failed payment: %s", data.Reference)
	return nil
}

func handleInvoiceUpdate(event *models.WebhookEvent) error {
	data, err := extractData(event)
	if err != nil {
		return fmt.Errorf("failed to process invoice update: %w", err)
	}
	log.Printf("Processing invoice update: %s", data.Reference)
	return nil
}

func extractData(event *models.WebhookEvent) (*paystackData, error) {
	var envelope paystackEnvelope
	if err := json.Unmarshal(event.Payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
