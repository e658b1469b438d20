package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/tgshop/miniapp-backend/api/responses"
	"github.com/tgshop/miniapp-backend/pkg/config"
	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health is the static liveness payload the mini-app polls.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, types.StatusResponse{Status: "ok", Message: "Server is running"})
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TGShop-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.StatusResponse{Status: "live"})
	}
}

// HealthReady pings every configured dependency. Nil pingers are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TGShop-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		failed := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(failed)
			responses.WriteError(r.Context(), logg, w, err, !cfg.App.IsProd())
			return
		}
		responses.WriteSuccess(w, types.StatusResponse{Status: "ready"})
	}
}
