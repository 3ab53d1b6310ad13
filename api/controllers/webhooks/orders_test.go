package webhooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	webhookorders "github.com/omarkhalil/framecraft-backend/internal/webhooks/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
)

type fakeGateway struct {
	lastBody []byte
	calls    int
	outcome  webhookorders.Outcome
}

func (f *fakeGateway) Process(_ context.Context, body []byte) webhookorders.Outcome {
	f.calls++
	f.lastBody = body
	return f.outcome
}

type fakeLogRepo struct {
	entries []models.WebhookLog
}

func (f *fakeLogRepo) Create(_ context.Context, entry *models.WebhookLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) ListRecent(context.Context, uuid.UUID, int) ([]models.WebhookLog, error) {
	return nil, nil
}

func decodeFlat(t *testing.T, w *httptest.ResponseRecorder) orderWebhookResponse {
	t.Helper()
	var body orderWebhookResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestOrderWebhookAnswersPreflight(t *testing.T) {
	gateway := &fakeGateway{}
	logs := &fakeLogRepo{}
	handler := OrderWebhook(gateway, logs, nil)

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodOptions, "/api/v1/webhooks/orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", w.Code)
	}
	if gateway.calls != 0 {
		t.Fatalf("preflight must not reach the gateway")
	}
	if len(logs.entries) != 0 {
		t.Fatalf("preflight must not be audit-logged")
	}
}

func TestOrderWebhookRejectsNonPost(t *testing.T) {
	gateway := &fakeGateway{}
	logs := &fakeLogRepo{}
	handler := OrderWebhook(gateway, logs, nil)

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/v1/webhooks/orders", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
	body := decodeFlat(t, w)
	if body.Success || body.Error != "method not allowed" {
		t.Fatalf("unexpected body %+v", body)
	}
	if gateway.calls != 0 {
		t.Fatalf("non-POST must not reach the gateway")
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected one audit row, got %d", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.StatusCode != http.StatusMethodNotAllowed || entry.TenantID != nil {
		t.Fatalf("unexpected audit row %+v", entry)
	}
}

func TestOrderWebhookPassesBodyAndShapesSuccess(t *testing.T) {
	gateway := &fakeGateway{outcome: webhookorders.Outcome{
		Status:      http.StatusOK,
		Success:     true,
		Message:     "order received",
		OrderSerial: "INV-2608-0001",
	}}
	handler := OrderWebhook(gateway, &fakeLogRepo{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", strings.NewReader(`{"webhook_key":"k"}`))
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if string(gateway.lastBody) != `{"webhook_key":"k"}` {
		t.Fatalf("raw body not forwarded: %q", gateway.lastBody)
	}

	body := decodeFlat(t, w)
	if !body.Success || body.OrderSerial != "INV-2608-0001" || body.Message != "order received" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Error != "" {
		t.Fatalf("success responses must not carry an error field")
	}
}

func TestOrderWebhookShapesFailure(t *testing.T) {
	gateway := &fakeGateway{outcome: webhookorders.Outcome{
		Status:  http.StatusUnauthorized,
		Message: "unknown webhook key",
	}}
	handler := OrderWebhook(gateway, &fakeLogRepo{}, nil)

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders", strings.NewReader(`{}`)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := decodeFlat(t, w)
	if body.Success || body.Error != "unknown webhook key" {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.OrderSerial != "" {
		t.Fatalf("failed intake must not return a serial")
	}
}
