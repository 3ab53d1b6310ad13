package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/api/middleware"
	"github.com/omarkhalil/framecraft-backend/api/responses"
	"github.com/omarkhalil/framecraft-backend/api/validators"
	internalorders "github.com/omarkhalil/framecraft-backend/internal/orders"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

// Create runs the dashboard ingestion path: same validation and arithmetic
// as the webhook, minus key auth. Responds 201 only after the order and its
// items are committed.
func Create(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		tenantID, err := parseTenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), payload.toInput(tenantID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// List returns one tenant-scoped page of orders, newest first.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		tenantID, err := parseTenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		list, err := svc.List(r.Context(), tenantID, pagination.Params{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// Detail returns the full order with its items.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		tenantID, err := parseTenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), tenantID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateStatus moves the order through its lifecycle and replays the change
// to the admin mirror best-effort.
func UpdateStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		tenantID, err := parseTenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), tenantID, orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Delete removes the order, its items, its ledger transactions, and the
// admin mirror copy.
func Delete(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		tenantID, err := parseTenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), tenantID, orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nil)
	}
}

type createOrderRequest struct {
	CustomerName   string                   `json:"customer_name" validate:"required"`
	Phone          string                   `json:"phone" validate:"required"`
	Email          *string                  `json:"email,omitempty"`
	DeliveryMethod string                   `json:"delivery_method"`
	Address        *string                  `json:"address,omitempty"`
	Governorate    *string                  `json:"governorate,omitempty"`
	PaymentMethod  string                   `json:"payment_method"`
	ShippingCost   decimal.Decimal          `json:"shipping_cost"`
	Discount       decimal.Decimal          `json:"discount"`
	Deposit        decimal.Decimal          `json:"deposit"`
	Items          []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createOrderItemRequest struct {
	ProductType  string          `json:"product_type" validate:"required"`
	Size         string          `json:"size" validate:"required"`
	Quantity     int             `json:"quantity" validate:"min=1"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
}

func (p createOrderRequest) toInput(tenantID uuid.UUID) internalorders.CreateOrderInput {
	items := make([]internalorders.CreateOrderItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, internalorders.CreateOrderItemInput{
			ProductType:  item.ProductType,
			Size:         item.Size,
			Quantity:     item.Quantity,
			Cost:         item.Cost,
			Price:        item.Price,
			ItemDiscount: item.ItemDiscount,
		})
	}
	return internalorders.CreateOrderInput{
		TenantID:       tenantID,
		CustomerName:   p.CustomerName,
		Phone:          p.Phone,
		Email:          p.Email,
		DeliveryMethod: p.DeliveryMethod,
		Address:        p.Address,
		Governorate:    p.Governorate,
		PaymentMethod:  p.PaymentMethod,
		ShippingCost:   p.ShippingCost,
		Discount:       p.Discount,
		Deposit:        p.Deposit,
		Source:         enums.OrderSourceDashboard,
		Items:          items,
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func parseTenantID(r *http.Request) (uuid.UUID, error) {
	tenantID := middleware.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant context missing")
	}
	parsed, err := uuid.Parse(tenantID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id")
	}
	return parsed, nil
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return parsed, nil
}
