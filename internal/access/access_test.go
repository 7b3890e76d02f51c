package access

import (
	"testing"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

func TestResolveRoleMatchesPortal(t *testing.T) {
	roles := []enums.UserRole{enums.UserRoleCustomer, enums.UserRoleSeller, enums.UserRoleAdmin}
	portals := []enums.PortalType{enums.PortalCustomer, enums.PortalSeller, enums.PortalAdmin}

	for _, role := range roles {
		for _, portal := range portals {
			principal := &Principal{UserID: uuid.New(), Role: role}
			got := Resolve(principal, PortalConfig{Portal: portal})

			want := DecisionDenied
			if portal == enums.PortalCustomer || string(role) == string(portal) {
				want = DecisionGranted
			}
			if got != want {
				t.Fatalf("Resolve(role=%s, portal=%s) = %s, want %s", role, portal, got, want)
			}
		}
	}
}

func TestResolveGuestOnlyCustomerPortal(t *testing.T) {
	for _, portal := range []enums.PortalType{enums.PortalCustomer, enums.PortalSeller, enums.PortalAdmin} {
		got := Resolve(nil, PortalConfig{Portal: portal})
		want := DecisionDenied
		if portal == enums.PortalCustomer {
			want = DecisionGranted
		}
		if got != want {
			t.Fatalf("Resolve(guest, %s) = %s, want %s", portal, got, want)
		}
	}
}

func TestResolveGuestDeniedSellerPortal(t *testing.T) {
	if got := Resolve(nil, PortalConfig{Portal: enums.PortalSeller}); got != DecisionDenied {
		t.Fatalf("guest on seller portal: got %s, want DENIED", got)
	}
}

func TestResolveSellerGrantedCustomerPortal(t *testing.T) {
	principal := &Principal{UserID: uuid.New(), Role: enums.UserRoleSeller}
	if got := Resolve(principal, PortalConfig{Portal: enums.PortalCustomer}); got != DecisionGranted {
		t.Fatalf("seller on customer portal: got %s, want GRANTED", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	principal := &Principal{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	portal := PortalConfig{Portal: enums.PortalSeller}
	first := Resolve(principal, portal)
	for i := 0; i < 10; i++ {
		if got := Resolve(principal, portal); got != first {
			t.Fatalf("resolution not deterministic: %s then %s", first, got)
		}
	}
}

func TestRouteFor(t *testing.T) {
	cases := []struct {
		role   enums.UserRole
		portal enums.PortalType
	}{
		{enums.UserRoleCustomer, enums.PortalCustomer},
		{enums.UserRoleSeller, enums.PortalSeller},
		{enums.UserRoleAdmin, enums.PortalAdmin},
	}
	for _, tc := range cases {
		got, err := RouteFor(tc.role)
		if err != nil {
			t.Fatalf("RouteFor(%s) returned error: %v", tc.role, err)
		}
		if got != tc.portal {
			t.Fatalf("RouteFor(%s) = %s, want %s", tc.role, got, tc.portal)
		}
	}

	if _, err := RouteFor(enums.UserRole("intruder")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestDeniedErrorCarriesRedirect(t *testing.T) {
	principal := &Principal{UserID: uuid.New(), Role: enums.UserRoleSeller}
	err := DeniedError(principal, PortalConfig{Portal: enums.PortalAdmin})

	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatal("expected typed error")
	}
	if appErr.Code() != pkgerrors.CodeAccessDenied {
		t.Fatalf("expected ACCESS_DENIED, got %s", appErr.Code())
	}
	details, ok := appErr.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected redirect details, got %T", appErr.Details())
	}
	if details["redirect_to"] != "seller" {
		t.Fatalf("expected redirect_to seller, got %q", details["redirect_to"])
	}
}

func TestDeniedErrorGuestHasNoRedirect(t *testing.T) {
	err := DeniedError(nil, PortalConfig{Portal: enums.PortalAdmin})
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatal("expected typed error")
	}
	if appErr.Details() != nil {
		t.Fatalf("guests must not get a redirect hint, got %v", appErr.Details())
	}
}
