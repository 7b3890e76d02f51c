package enums

import "fmt"

// PortalType identifies one of the role-scoped storefront portals.
type PortalType string

const (
	PortalCustomer PortalType = "customer"
	PortalSeller   PortalType = "seller"
	PortalAdmin    PortalType = "admin"
)

var validPortalTypes = []PortalType{
	PortalCustomer,
	PortalSeller,
	PortalAdmin,
}

// String implements fmt.Stringer.
func (p PortalType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PortalType.
func (p PortalType) IsValid() bool {
	for _, candidate := range validPortalTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePortalType converts raw input into a PortalType.
func ParsePortalType(value string) (PortalType, error) {
	for _, candidate := range validPortalTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid portal type %q", value)
}
