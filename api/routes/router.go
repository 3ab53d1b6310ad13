package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omarkhalil/framecraft-backend/api/controllers"
	ordercontrollers "github.com/omarkhalil/framecraft-backend/api/controllers/orders"
	webhookcontrollers "github.com/omarkhalil/framecraft-backend/api/controllers/webhooks"
	"github.com/omarkhalil/framecraft-backend/api/middleware"
	"github.com/omarkhalil/framecraft-backend/internal/ledger"
	"github.com/omarkhalil/framecraft-backend/internal/orders"
	"github.com/omarkhalil/framecraft-backend/internal/payments"
	"github.com/omarkhalil/framecraft-backend/internal/webhookconfig"
	webhookorders "github.com/omarkhalil/framecraft-backend/internal/webhooks/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/config"
	"github.com/omarkhalil/framecraft-backend/pkg/db"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	ordersSvc orders.Service,
	paymentsSvc payments.Service,
	ledgerSvc ledger.Service,
	webhookConfigSvc webhookconfig.Service,
	webhookGateway webhookorders.Service,
	webhookLogs webhookorders.LogRepository,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Public intake. The handler owns the OPTIONS/405 contract, so every
	// method is routed to it.
	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Use(middleware.WebhookCORS())
		r.Use(middleware.WebhookRateLimit(
			redisClient,
			cfg.Webhook.RateLimitPerWindow,
			cfg.Webhook.RateLimitWindow,
			logg,
		))
		r.HandleFunc("/orders", webhookcontrollers.OrderWebhook(webhookGateway, webhookLogs, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS())
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordercontrollers.Create(ordersSvc, logg))
			r.Get("/", ordercontrollers.List(ordersSvc, logg))
			r.Get("/{orderId}", ordercontrollers.Detail(ordersSvc, logg))
			r.Patch("/{orderId}/status", ordercontrollers.UpdateStatus(ordersSvc, logg))
			r.Delete("/{orderId}", ordercontrollers.Delete(ordersSvc, logg))

			r.Route("/{orderId}/payments", func(r chi.Router) {
				r.Post("/customer", ordercontrollers.RecordCustomerPayment(paymentsSvc, logg))
				r.Get("/customer", ordercontrollers.ListCustomerPayments(paymentsSvc, logg))
				r.Post("/workshop", ordercontrollers.RecordWorkshopPayment(paymentsSvc, logg))
				r.Get("/workshop", ordercontrollers.ListWorkshopPayments(paymentsSvc, logg))
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", controllers.RecordTransaction(ledgerSvc, logg))
			r.Get("/", controllers.ListTransactions(ledgerSvc, logg))
			r.Get("/balance", controllers.TransactionBalance(ledgerSvc, logg))
		})

		r.Route("/webhook-config", func(r chi.Router) {
			r.Get("/", controllers.WebhookConfigFetch(webhookConfigSvc, logg))
			r.Post("/rotate", controllers.WebhookConfigRotate(webhookConfigSvc, logg))
			r.Patch("/", controllers.WebhookConfigSetActive(webhookConfigSvc, logg))
			r.Get("/logs", controllers.WebhookLogs(webhookLogs, logg))
		})
	})

	return r
}
