package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	orderscore "github.com/omarkhalil/framecraft-backend/internal/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/metrics"
)

type keyResolver interface {
	FindByKey(ctx context.Context, key string) (*models.WebhookConfig, error)
}

type orderCreator interface {
	Create(ctx context.Context, input orderscore.CreateOrderInput) (*models.Order, error)
}

// Outcome is the terminal result of one webhook request. The HTTP layer
// serializes it without reinterpreting anything.
type Outcome struct {
	Status      int
	Success     bool
	Message     string
	OrderSerial string
}

// Service runs the intake pipeline for one raw webhook body:
// authenticate the key, validate and persist the order, audit-log the
// terminal state, and shape a uniform response. Every call produces exactly
// one webhook log row, success or failure.
type Service interface {
	Process(ctx context.Context, body []byte) Outcome
}

type service struct {
	configs keyResolver
	orders  orderCreator
	logs    LogRepository
	logg    *logger.Logger
	metrics *metrics.WebhookMetrics
}

// NewService builds the webhook intake service.
func NewService(configs keyResolver, orders orderCreator, logs LogRepository, logg *logger.Logger, webhookMetrics *metrics.WebhookMetrics) (Service, error) {
	if configs == nil {
		return nil, fmt.Errorf("webhook config resolver required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if logs == nil {
		return nil, fmt.Errorf("webhook log repository required")
	}
	return &service{
		configs: configs,
		orders:  orders,
		logs:    logs,
		logg:    logg,
		metrics: webhookMetrics,
	}, nil
}

func (s *service) Process(ctx context.Context, body []byte) Outcome {
	started := time.Now()
	s.metrics.IncReceived()

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return s.finish(ctx, started, nil, nil, Outcome{
			Status:  http.StatusBadRequest,
			Message: "malformed payload",
		})
	}

	config, err := s.configs.FindByKey(ctx, payload.WebhookKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.finish(ctx, started, nil, nil, Outcome{
				Status:  http.StatusUnauthorized,
				Message: "unknown webhook key",
			})
		}
		if s.logg != nil {
			s.logg.Error(ctx, "webhook key lookup failed", err)
		}
		return s.finish(ctx, started, nil, nil, Outcome{
			Status:  http.StatusInternalServerError,
			Message: "failed to process order",
		})
	}
	if !config.Active {
		return s.finish(ctx, started, &config.TenantID, nil, Outcome{
			Status:  http.StatusForbidden,
			Message: "webhook config inactive",
		})
	}

	ctx = s.withTenant(ctx, config.TenantID)
	order, err := s.orders.Create(ctx, payload.toCreateInput(config.TenantID))
	if err != nil {
		return s.finish(ctx, started, &config.TenantID, nil, s.rejectOutcome(err))
	}

	return s.finish(ctx, started, &config.TenantID, &order.Serial, Outcome{
		Status:      http.StatusOK,
		Success:     true,
		Message:     "order received",
		OrderSerial: order.Serial,
	})
}

// rejectOutcome maps an intake failure onto the external contract: invalid
// payloads answer 400, anything that kept the order out of the database
// answers 500 so the sender retries.
func (s *service) rejectOutcome(err error) Outcome {
	code := pkgerrors.CodeOf(err)
	if code == pkgerrors.CodeValidation || code == pkgerrors.CodeMalformedPayload {
		message := "validation failed"
		if typed := pkgerrors.As(err); typed != nil {
			message = typed.Message()
		}
		return Outcome{Status: http.StatusBadRequest, Message: message}
	}
	return Outcome{Status: http.StatusInternalServerError, Message: "failed to persist order"}
}

// finish writes the single audit row for the request's terminal state,
// records metrics, and hands the outcome back. A failed audit write is
// logged but never changes the response.
func (s *service) finish(ctx context.Context, started time.Time, tenantID *uuid.UUID, serial *string, outcome Outcome) Outcome {
	entry := &models.WebhookLog{
		TenantID:    tenantID,
		OrderSerial: serial,
		StatusCode:  outcome.Status,
		Message:     outcome.Message,
	}
	if err := s.logs.Create(ctx, entry); err != nil && s.logg != nil {
		s.logg.Error(ctx, "webhook audit write failed", err)
	}

	s.metrics.ObserveOutcome(outcome.Status, time.Since(started))
	return outcome
}

func (s *service) withTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithTenantID(ctx, tenantID.String())
}
