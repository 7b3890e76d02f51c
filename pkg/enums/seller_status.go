package enums

import "fmt"

// SellerStatus tracks a seller account's standing.
type SellerStatus string

const (
	SellerStatusActive    SellerStatus = "active"
	SellerStatusInactive  SellerStatus = "inactive"
	SellerStatusSuspended SellerStatus = "suspended"
)

var validSellerStatuses = []SellerStatus{
	SellerStatusActive,
	SellerStatusInactive,
	SellerStatusSuspended,
}

// String implements fmt.Stringer.
func (s SellerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SellerStatus.
func (s SellerStatus) IsValid() bool {
	for _, candidate := range validSellerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSellerStatus converts raw input into a SellerStatus.
func ParseSellerStatus(value string) (SellerStatus, error) {
	for _, candidate := range validSellerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seller status %q", value)
}
