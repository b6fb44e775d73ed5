package controllers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
	"github.com/gofiber/fiber/v2"
)

// WebhookController serves the Paystack intake endpoint and the event log
// API consumed by the dashboard.
type WebhookController struct {
	svc  *webhook.Service
	repo repository.WebhookEventRepository
}

// NewWebhookController creates a webhook controller from its collaborators.
func NewWebhookController(svc *webhook.Service, repo repository.WebhookEventRepository) *WebhookController {
	return &WebhookController{svc: svc, repo: repo}
}

// HandlePaystackWebhook runs the intake pipeline for one delivery.
// Responses: 200 verified and processed, 401 invalid signature, 500 dispatch
// failure or internal error. Counter updates are best effort and never fail
// the request.
func (wc *WebhookController) HandlePaystackWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("x-paystack-signature"))

	result, err := wc.svc.ProcessIncoming(context.Background(), rawBody, signature)
	if err != nil {
		log.Printf("Error processing webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	event := result.Event
	_ = counter.AddReceived(event.EventType)

	if !result.SignatureValid {
		_ = counter.AddFailed(event.EventType)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature"})
	}

	if !result.Dispatch.Success {
		_ = counter.AddFailed(event.EventType)
		log.Printf("Failed to process webhook %s: %s", event.Reference, result.Dispatch.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Dispatch.Error})
	}

	_ = counter.AddProcessed(event.EventType)
	log.Printf("Successfully processed webhook %s in %dms", event.Reference, result.ResponseTime)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook processed successfully"})
}

// HandleListEvents returns the event log, newest first.
func (wc *WebhookController) HandleListEvents(c *fiber.Ctx) error {
	query := models.WebhookEventListQuery{Limit: 100, Offset: 0}
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query parameters"})
	}
	if err := query.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query parameters"})
	}

	events, err := wc.repo.List(query.Limit, query.Offset)
	if err != nil {
		log.Printf("Error fetching webhook events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch webhook events"})
	}
	return c.JSON(events)
}

// HandleGetEvent returns a single event by id.
func (wc *WebhookController) HandleGetEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event id"})
	}

	event, err := wc.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Webhook event not found"})
		}
		log.Printf("Error fetching webhook event: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch webhook event"})
	}
	return c.JSON(event)
}

// HandleGetEventByReference returns one event matching a provider reference.
// References are not unique; which duplicate is returned is unspecified.
func (wc *WebhookController) HandleGetEventByReference(c *fiber.Ctx) error {
	reference := strings.TrimSpace(c.Params("reference"))
	if reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reference"})
	}

	event, err := wc.repo.GetByReference(reference)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Webhook event not found"})
		}
		log.Printf("Error fetching webhook event: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch webhook event"})
	}
	return c.JSON(event)
}

// HandleStats returns aggregate counts for the dashboard: totals per status
// from the store, per-type delivery counters from Redis.
func (wc *WebhookController) HandleStats(c *fiber.Ctx) error {
	total, err := wc.repo.Count()
	if err != nil {
		log.Printf("Error fetching webhook stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch webhook stats"})
	}

	byStatus := fiber.Map{}
	for _, status := range []string{models.WebhookStatusPending, models.WebhookStatusProcessed, models.WebhookStatusFailed} {
		count, err := wc.repo.CountByStatus(status)
		if err != nil {
			log.Printf("Error fetching webhook stats: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch webhook stats"})
		}
		byStatus[strings.ToLower(status)] = count
	}

	return c.JSON(fiber.Map{
		"total":      total,
		"byStatus":   byStatus,
		"deliveries": counter.Snapshot(),
	})
}
