package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omarkhalil/framecraft-backend/api/middleware"
	"github.com/omarkhalil/framecraft-backend/api/responses"
	"github.com/omarkhalil/framecraft-backend/api/validators"
	"github.com/omarkhalil/framecraft-backend/internal/ledger"
	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

// RecordTransaction appends a manual income or expense row to the tenant
// ledger.
func RecordTransaction(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		txType, err := enums.ParseTransactionType(payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type"))
			return
		}

		txn, err := svc.Record(r.Context(), ledger.RecordTransactionInput{
			TenantID:    tenantID,
			Type:        txType,
			Amount:      payload.Amount,
			Description: payload.Description,
			OrderSerial: payload.OrderSerial,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// ListTransactions returns one page of ledger rows, newest first.
func ListTransactions(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
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

// TransactionBalance folds the tenant's rows into the current balance. The
// balance is always derived, never stored.
func TransactionBalance(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		balance, err := svc.Balance(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, balanceResponse{Balance: balance})
	}
}

type recordTransactionRequest struct {
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	OrderSerial string          `json:"order_serial,omitempty"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

func tenantFromRequest(r *http.Request) (uuid.UUID, error) {
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
