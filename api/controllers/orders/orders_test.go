package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/omarkhalil/framecraft-backend/api/middleware"
	internalorders "github.com/omarkhalil/framecraft-backend/internal/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/db/models"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
	"github.com/omarkhalil/framecraft-backend/pkg/types"
)

type fakeOrderService struct {
	lastCreate internalorders.CreateOrderInput
	createErr  error
	created    *models.Order
}

func (f *fakeOrderService) Create(_ context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
	f.lastCreate = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	return &models.Order{TenantID: input.TenantID, Serial: "INV-2608-0001"}, nil
}

func (f *fakeOrderService) Get(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (f *fakeOrderService) List(context.Context, uuid.UUID, pagination.Params) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

func (f *fakeOrderService) UpdateStatus(context.Context, uuid.UUID, uuid.UUID, enums.OrderStatus) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (f *fakeOrderService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func withTenant(req *http.Request, tenantID uuid.UUID) *http.Request {
	ctx := middleware.WithTenantID(req.Context(), tenantID.String())
	return req.WithContext(ctx)
}

const createBody = `{
	"customer_name": "Nour",
	"phone": "0791234567",
	"delivery_method": "delivery",
	"payment_method": "cod",
	"shipping_cost": "50",
	"discount": "0",
	"deposit": "0",
	"items": [
		{"product_type": "frame", "size": "30x40", "quantity": 2, "cost": "80", "price": "190", "item_discount": "10"}
	]
}`

func TestCreateMapsBodyToServiceInput(t *testing.T) {
	svc := &fakeOrderService{}
	tenantID := uuid.New()

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(createBody)), tenantID)
	w := httptest.NewRecorder()
	Create(svc, nil)(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, tenantID, svc.lastCreate.TenantID)
	require.Equal(t, "Nour", svc.lastCreate.CustomerName)
	require.Equal(t, enums.OrderSourceDashboard, svc.lastCreate.Source)
	require.Len(t, svc.lastCreate.Items, 1)
	require.Equal(t, 2, svc.lastCreate.Items[0].Quantity)

	var envelope types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	data := envelope.Data.(map[string]any)
	require.Equal(t, "INV-2608-0001", data["Serial"])
}

func TestCreateRequiresTenantContext(t *testing.T) {
	svc := &fakeOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(createBody))
	w := httptest.NewRecorder()
	Create(svc, nil)(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, uuid.Nil, svc.lastCreate.TenantID)
}

func TestCreateSurfacesServiceError(t *testing.T) {
	svc := &fakeOrderService{createErr: pkgerrors.New(pkgerrors.CodeValidation, "missing customer name")}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(createBody)), uuid.New())
	w := httptest.NewRecorder()
	Create(svc, nil)(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	require.Equal(t, "missing customer name", envelope.Error.Message)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	svc := &fakeOrderService{}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"items": [`)), uuid.New())
	w := httptest.NewRecorder()
	Create(svc, nil)(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, uuid.Nil, svc.lastCreate.TenantID)
}

func newStatusRouter(svc internalorders.Service) http.Handler {
	r := chi.NewRouter()
	r.Patch("/api/v1/orders/{orderId}/status", UpdateStatus(svc, nil))
	return r
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := &fakeOrderService{}

	req := withTenant(httptest.NewRequest(
		http.MethodPatch,
		"/api/v1/orders/"+uuid.NewString()+"/status",
		strings.NewReader(`{"status":"teleported"}`),
	), uuid.New())
	w := httptest.NewRecorder()

	router := newStatusRouter(svc)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
