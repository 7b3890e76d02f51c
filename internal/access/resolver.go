package access

import (
	"context"
	"sync"

	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

// PrincipalSource resolves the current principal from the identity layer.
// A nil principal with a nil error means guest.
type PrincipalSource interface {
	CurrentPrincipal(ctx context.Context) (*Principal, error)
}

// Resolution is the committed outcome of one resolution cycle. Stale is set
// when a newer cycle superseded this one before its lookup completed; stale
// resolutions carry no decision and must be discarded by the caller.
type Resolution struct {
	Decision   Decision
	Principal  *Principal
	RedirectTo *enums.PortalType
	Stale      bool
}

// Resolver runs principal resolution cycles against an asynchronous identity
// source. Each call to Resolve starts a new cycle; when cycles overlap, only
// the newest one is allowed to commit (last-writer-wins on the principal), so
// a slow lookup can never flip a fresher decision.
type Resolver struct {
	source PrincipalSource
	log    *logger.Logger

	mu       sync.Mutex
	cycle    uint64
	decision Decision
}

// NewResolver builds a resolver over the given identity source.
func NewResolver(source PrincipalSource, log *logger.Logger) (*Resolver, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "principal source is required")
	}
	return &Resolver{source: source, log: log, decision: DecisionChecking}, nil
}

// Decision returns the decision committed by the most recent completed cycle,
// or CHECKING while the first cycle is still in flight.
func (r *Resolver) Decision() Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decision
}

// Resolve runs one full resolution cycle for the portal: it marks the state
// CHECKING, performs the identity lookup, and commits GRANTED or DENIED.
// Identity failures degrade to guest rather than erroring. If another cycle
// started while this one's lookup was in flight, the result is discarded and
// returned with Stale set.
func (r *Resolver) Resolve(ctx context.Context, portal PortalConfig) Resolution {
	r.mu.Lock()
	r.cycle++
	seq := r.cycle
	r.decision = DecisionChecking
	r.mu.Unlock()

	principal, err := r.source.CurrentPrincipal(ctx)
	if err != nil {
		if r.log != nil {
			r.log.Warn(ctx, "identity lookup failed, treating principal as guest")
		}
		principal = nil
	}

	decision := Resolve(principal, portal)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.cycle {
		return Resolution{Stale: true}
	}
	r.decision = decision

	res := Resolution{Decision: decision, Principal: principal}
	if decision == DecisionDenied && principal != nil {
		if home, routeErr := RouteFor(principal.Role); routeErr == nil {
			res.RedirectTo = &home
		}
	}
	return res
}
