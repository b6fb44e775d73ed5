package webhook

import "github.com/ManuelReschke/HookFox/app/models"

// DispatchResult reports the outcome of routing one event to its handler.
// Success with a non-empty Error means the event was acknowledged without a
// dedicated handler; the message is informational, not a failure.
type DispatchResult struct {
	Success bool
	Error   string
}

// IntakeResult is the terminal state of one delivery after the pipeline ran.
type IntakeResult struct {
	Event          *models.WebhookEvent
	SignatureValid bool
	Dispatch       DispatchResult
	ResponseTime   int64
}
