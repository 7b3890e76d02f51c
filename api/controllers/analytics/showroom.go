package analytics

import (
	"net/http"

	"github.com/tilevista/tilevista-backend/api/middleware"
	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/analytics"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

const maxTileStats = 100

// ShowroomSummary returns the seller dashboard KPIs for their showroom.
func ShowroomSummary(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		showroomID := middleware.ShowroomIDFromContext(ctx)
		if showroomID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "showroom context required"))
			return
		}

		start, end, err := resolveAnalyticsRange(r, timeNowUTC())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, maxTileStats)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.ShowroomSummary(ctx, types.ShowroomQueryRequest{
			ShowroomID: showroomID,
			Start:      start,
			End:        end,
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
