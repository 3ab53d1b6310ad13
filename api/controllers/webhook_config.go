package controllers

import (
	"net/http"

	"github.com/omarkhalil/framecraft-backend/api/responses"
	"github.com/omarkhalil/framecraft-backend/api/validators"
	"github.com/omarkhalil/framecraft-backend/internal/webhookconfig"
	webhookorders "github.com/omarkhalil/framecraft-backend/internal/webhooks/orders"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

// WebhookConfigFetch returns the tenant's webhook credentials, creating them
// on first request.
func WebhookConfigFetch(svc webhookconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook config service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		config, err := svc.EnsureConfig(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, config)
	}
}

// WebhookConfigRotate replaces the tenant's key. The old key stops working
// the moment the new one is stored.
func WebhookConfigRotate(svc webhookconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook config service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		config, err := svc.RotateKey(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, config)
	}
}

// WebhookConfigSetActive toggles intake for the tenant's key without
// discarding it.
func WebhookConfigSetActive(svc webhookconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook config service unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Active == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "active is required"))
			return
		}

		config, err := svc.SetActive(r.Context(), tenantID, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, config)
	}
}

// WebhookLogs returns the tenant's most recent webhook audit rows.
func WebhookLogs(repo webhookorders.LogRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook log repository unavailable"))
			return
		}

		tenantID, err := tenantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := repo.ListRecent(r.Context(), tenantID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list webhook logs"))
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}
