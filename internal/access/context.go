package access

import "context"

type contextKey struct{}

var principalKey contextKey

// WithPrincipal attaches the resolved principal to the request context.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the principal attached by the auth middleware,
// or nil when the request is anonymous.
func PrincipalFromContext(ctx context.Context) *Principal {
	if ctx == nil {
		return nil
	}
	principal, _ := ctx.Value(principalKey).(*Principal)
	return principal
}
