package enums

import "fmt"

// AnalyticsEventType is the canonical event_type for analytics routing.
type AnalyticsEventType string

const (
	AnalyticsEventTileView        AnalyticsEventType = "tile_view"
	AnalyticsEventTileApplication AnalyticsEventType = "tile_application"
)

var validAnalyticsEventTypes = []AnalyticsEventType{
	AnalyticsEventTileView,
	AnalyticsEventTileApplication,
}

// String returns the raw string value of the analytics event type.
func (a AnalyticsEventType) String() string {
	return string(a)
}

// IsValid reports whether the value matches the canonical analytics event_type enum.
func (a AnalyticsEventType) IsValid() bool {
	for _, candidate := range validAnalyticsEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnalyticsEventType converts the raw string to AnalyticsEventType.
func ParseAnalyticsEventType(value string) (AnalyticsEventType, error) {
	for _, candidate := range validAnalyticsEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics event type %q", value)
}
