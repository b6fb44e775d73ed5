package webhook

import (
	"fmt"
	"log"

	"github.com/ManuelReschke/HookFox/app/models"
)

// Handler processes one webhook event. Handlers extract what they need from
// the raw payload themselves and report failure through the returned error.
type Handler func(event *models.WebhookEvent) error

// Dispatcher routes events to handlers by exact event type match.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher with an empty registry.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register binds a handler to an event type, replacing any previous binding.
func (d *Dispatcher) Register(eventType string, handler Handler) {
	d.handlers[eventType] = handler
}

// Dispatch runs the handler registered for the event's type. Events with no
// registered handler are acknowledged as successful with an informational
// message: the provider retries failed deliveries indefinitely, and an
// unknown-but-benign type must not trigger a retry storm. A panicking
// handler is recovered and converted into a failed result; faults never
// propagate to the caller.
func (d *Dispatcher) Dispatch(event *models.WebhookEvent) (result DispatchResult) {
	handler, ok := d.handlers[event.EventType]
	if !ok {
		log.Printf("No handler for event type: %s", event.EventType)
		return DispatchResult{
			Success: true,
			Error:   fmt.Sprintf("Event type %s has no specific handler, but was acknowledged", event.EventType),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Handler for %s panicked: %v", event.EventType, r)
			result = DispatchResult{
				Success: false,
				Error:   fmt.Sprintf("handler for %s panicked: %v", event.EventType, r),
			}
		}
	}()

	if err := handler(event); err != nil {
		log.Printf("Failed to process webhook: %v", err)
		return DispatchResult{Success: false, Error: err.Error()}
	}
	return DispatchResult{Success: true}
}
