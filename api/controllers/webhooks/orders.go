package webhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	webhookorders "github.com/omarkhalil/framecraft-backend/internal/webhooks/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
)

// orderWebhookResponse is the flat external contract. It never uses the
// internal error envelope: storefront plugins parse these exact fields.
type orderWebhookResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	OrderSerial string `json:"order_serial,omitempty"`
	Error       string `json:"error,omitempty"`
}

// OrderWebhook is the public intake endpoint. POST runs the gateway
// pipeline; OPTIONS answers the preflight; anything else is 405 and still
// gets an audit row, since senders that misconfigure the method are worth
// seeing in the log.
func OrderWebhook(svc webhookorders.Service, logs webhookorders.LogRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
			return
		case http.MethodPost:
		default:
			if logs != nil {
				entry := &models.WebhookLog{
					StatusCode: http.StatusMethodNotAllowed,
					Message:    "method not allowed",
				}
				if err := logs.Create(r.Context(), entry); err != nil && logg != nil {
					logg.Error(r.Context(), "webhook audit write failed", err)
				}
			}
			writeFlat(w, http.StatusMethodNotAllowed, orderWebhookResponse{
				Success: false,
				Error:   "method not allowed",
			})
			return
		}

		if svc == nil {
			writeFlat(w, http.StatusInternalServerError, orderWebhookResponse{
				Success: false,
				Error:   "failed to process order",
			})
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeFlat(w, http.StatusBadRequest, orderWebhookResponse{
				Success: false,
				Error:   "malformed payload",
			})
			return
		}

		outcome := svc.Process(r.Context(), body)
		if outcome.Success {
			writeFlat(w, outcome.Status, orderWebhookResponse{
				Success:     true,
				Message:     outcome.Message,
				OrderSerial: outcome.OrderSerial,
			})
			return
		}
		writeFlat(w, outcome.Status, orderWebhookResponse{
			Success: false,
			Error:   outcome.Message,
		})
	}
}

func writeFlat(w http.ResponseWriter, status int, payload orderWebhookResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode webhook response","err":"%v"}`, err)
	}
}
