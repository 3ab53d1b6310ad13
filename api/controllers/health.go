package controllers

import (
	"net/http"

	"github.com/omarkhalil/framecraft-backend/api/responses"
	"github.com/omarkhalil/framecraft-backend/pkg/config"
	"github.com/omarkhalil/framecraft-backend/pkg/db"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
	"github.com/omarkhalil/framecraft-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Framecraft-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies. The instance is not ready to take
// traffic until both answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Framecraft-Env", cfg.App.Env)

		checks := map[string]string{}

		if dbP == nil {
			checks["database"] = "missing"
		} else if err := dbP.Ping(r.Context()); err != nil {
			checks["database"] = "down"
		} else {
			checks["database"] = "ok"
		}

		if redisP == nil {
			checks["redis"] = "missing"
		} else if err := redisP.Ping(r.Context()); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "ok"
		}

		for _, state := range checks {
			if state != "ok" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
