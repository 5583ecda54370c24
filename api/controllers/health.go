package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/inkwellpress/inkwell-backend/api/responses"
	"github.com/inkwellpress/inkwell-backend/pkg/config"
	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

const envHeader = "X-Inkwell-Env"

// Pinger is anything the readiness probe can exercise.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies. Any failure turns the probe red.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		for name, pinger := range map[string]Pinger{
			"database": dbP,
			"redis":    redisP,
		} {
			if pinger == nil {
				checks[name] = "not configured"
				healthy = false
				continue
			}
			if err := pinger.Ping(ctx); err != nil {
				checks[name] = err.Error()
				healthy = false
				continue
			}
			checks[name] = "ok"
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
					WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
