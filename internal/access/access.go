package access

import (
	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// Decision is the outcome of one portal access resolution.
type Decision string

const (
	DecisionChecking Decision = "CHECKING"
	DecisionGranted  Decision = "GRANTED"
	DecisionDenied   Decision = "DENIED"
)

func (d Decision) String() string {
	return string(d)
}

// Principal is the current actor. A nil *Principal means guest.
type Principal struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	ShowroomID *uuid.UUID
}

// PortalConfig describes the portal a request targets. Exactly one portal
// type (customer) is public; the others require an exact role match.
type PortalConfig struct {
	Portal enums.PortalType
}

// Resolve decides whether the principal may enter the portal. Pure function:
// the customer portal is open to everyone, including guests; any other portal
// grants access only when the principal's role equals the portal type.
func Resolve(principal *Principal, portal PortalConfig) Decision {
	if portal.Portal == enums.PortalCustomer {
		return DecisionGranted
	}
	if principal == nil {
		return DecisionDenied
	}
	if string(principal.Role) == string(portal.Portal) {
		return DecisionGranted
	}
	return DecisionDenied
}

// RouteFor maps an authenticated role to its home portal. Guests have no
// entry here: they are never redirected, only shown the customer portal.
func RouteFor(role enums.UserRole) (enums.PortalType, error) {
	switch role {
	case enums.UserRoleCustomer:
		return enums.PortalCustomer, nil
	case enums.UserRoleSeller:
		return enums.PortalSeller, nil
	case enums.UserRoleAdmin:
		return enums.PortalAdmin, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
}

// DeniedError builds the ACCESS_DENIED error for a resolved denial. For
// authenticated principals the details carry the portal they should be
// redirected to; guests get no redirect hint.
func DeniedError(principal *Principal, portal PortalConfig) error {
	err := pkgerrors.New(pkgerrors.CodeAccessDenied, "role does not grant access to the "+portal.Portal.String()+" portal")
	if principal == nil {
		return err
	}
	home, routeErr := RouteFor(principal.Role)
	if routeErr != nil {
		return err
	}
	return err.WithDetails(map[string]string{"redirect_to": home.String()})
}
