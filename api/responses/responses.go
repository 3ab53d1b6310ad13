// Package responses writes the API's JSON envelopes and maps typed errors to
// HTTP status codes.
package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteError maps err through the error taxonomy: the status comes from the
// code's metadata, and the concrete message only leaves the process for
// client-fault codes. Everything else answers with the generic public text.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: clientMessage(typed, meta),
		},
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	logRequestError(ctx, logg, err)
	writeJSON(w, meta.HTTPStatus, payload)
}

// clientMessage returns the error's own message for codes the client caused,
// and the code's public text for everything internal.
func clientMessage(typed *pkgerrors.Error, meta pkgerrors.Metadata) string {
	switch typed.Code() {
	case pkgerrors.CodeMalformedPayload,
		pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeInvalidAmount,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			return m
		}
	}
	return meta.PublicMessage
}

func logRequestError(ctx context.Context, logg *logger.Logger, err error) {
	if logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	ctx = logg.WithFields(ctx, map[string]any{
		"error":         dump.TopMessage,
		"error_code":    dump.Code,
		"error_chain":   dump.Chain,
		"pg_code":       dump.PGCode,
		"pg_detail":     dump.PGDetail,
		"pg_message":    dump.PGMessage,
		"pg_table":      dump.PGTable,
		"pg_column":     dump.PGColumn,
		"pg_constraint": dump.PGConstraint,
	})
	logg.Error(ctx, "request.error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
