package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/pkg/bigquery"
	"github.com/tilevista/tilevista-backend/pkg/config"
	"github.com/tilevista/tilevista-backend/pkg/db"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/redis"
	"github.com/tilevista/tilevista-backend/pkg/storage/gcs"
)

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TileVista-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency; any failure flips the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, gcsP gcs.Pinger, bqP bigquery.Pinger) http.HandlerFunc {
	checks := []struct {
		name string
		ping pinger
	}{
		{"database", dbP},
		{"redis", redisP},
		{"gcs", gcsP},
		{"bigquery", bqP},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TileVista-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for _, check := range checks {
			if check.ping == nil {
				continue
			}
			if err := check.ping.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" not ready"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

type pinger interface {
	Ping(context.Context) error
}
