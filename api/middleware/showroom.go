package middleware

import (
	"net/http"

	"github.com/tilevista/tilevista-backend/api/responses"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

// ShowroomContext rejects seller requests whose token carries no showroom
// claim. Runs behind Auth on seller routes.
func ShowroomContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ShowroomIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "showroom context missing"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
