package analytics

import (
	"net/http"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/internal/analytics"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

// AdminAggregate returns per-showroom totals across the platform.
func AdminAggregate(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		start, end, err := resolveAnalyticsRange(r, timeNowUTC())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.Aggregate(ctx, types.AggregateQueryRequest{Start: start, End: end})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
