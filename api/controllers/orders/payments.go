package orders

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/api/responses"
	"github.com/omarkhalil/framecraft-backend/api/validators"
	"github.com/omarkhalil/framecraft-backend/internal/payments"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
)

// RecordCustomerPayment records a payment toward an order's balance. A
// counted payment that exceeds the remaining balance is rejected and leaves
// no row behind.
func RecordCustomerPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
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

		var payload recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseCustomerPaymentStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		payment, err := svc.RecordCustomerPayment(r.Context(), payments.RecordCustomerPaymentInput{
			TenantID: tenantID,
			OrderID:  orderID,
			Amount:   payload.Amount,
			Status:   status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// RecordWorkshopPayment records what the workshop is owed or has been paid
// for producing the order.
func RecordWorkshopPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
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

		var payload recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseWorkshopPaymentStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		payment, err := svc.RecordWorkshopPayment(r.Context(), payments.RecordWorkshopPaymentInput{
			TenantID: tenantID,
			OrderID:  orderID,
			Amount:   payload.Amount,
			Status:   status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// ListCustomerPayments returns the order's customer payment history.
func ListCustomerPayments(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
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

		rows, err := svc.ListCustomerPayments(r.Context(), tenantID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ListWorkshopPayments returns the order's workshop payment history.
func ListWorkshopPayments(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
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

		rows, err := svc.ListWorkshopPayments(r.Context(), tenantID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type recordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status" validate:"required"`
}
