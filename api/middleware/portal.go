package middleware

import (
	"net/http"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/internal/access"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

// Portal enforces portal access rules for the route subtree. The customer
// portal is open to guests; seller and admin portals require an exact role
// match. Denials carry the principal's home portal as a redirect hint.
func Portal(portal enums.PortalType, logg *logger.Logger) func(http.Handler) http.Handler {
	cfg := access.PortalConfig{Portal: portal}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := access.PrincipalFromContext(r.Context())
			if access.Resolve(principal, cfg) != access.DecisionGranted {
				responses.WriteError(r.Context(), logg, w, access.DeniedError(principal, cfg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
