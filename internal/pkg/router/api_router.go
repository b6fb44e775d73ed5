package router

import (
	"github.com/ManuelReschke/HookFox/app/controllers"
	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/database"
	"github.com/ManuelReschke/HookFox/internal/pkg/env"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	repository.InitializeFactory(database.GetDB())
	repo := repository.GetGlobalFactory().GetWebhookEventRepository()
	svc := webhook.NewService(repo, webhook.DefaultDispatcher(), env.GetEnv("PAYSTACK_SECRET_KEY", ""))
	wc := controllers.NewWebhookController(svc, repo)

	api := app.Group("/api")
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// The intake route is deliberately not rate limited: Paystack retries
	// throttled deliveries, and a limiter here would turn bursts into
	// retry storms.
	api.Post("/webhook/paystack", wc.HandlePaystackWebhook)

	events := api.Group("/webhook/events", limiter.New())
	events.Get("/", wc.HandleListEvents)
	events.Get("/reference/:reference", wc.HandleGetEventByReference)
	events.Get("/:id", wc.HandleGetEvent)
	api.Get("/webhook/stats", limiter.New(), wc.HandleStats)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
