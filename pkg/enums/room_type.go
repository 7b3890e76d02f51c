package enums

import "fmt"

// RoomType identifies one of the fixed visualizer room templates.
type RoomType string

const (
	RoomTypeHall     RoomType = "hall"
	RoomTypeWashroom RoomType = "washroom"
	RoomTypeKitchen  RoomType = "kitchen"
)

var validRoomTypes = []RoomType{
	RoomTypeHall,
	RoomTypeWashroom,
	RoomTypeKitchen,
}

// String implements fmt.Stringer.
func (r RoomType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoomType.
func (r RoomType) IsValid() bool {
	for _, candidate := range validRoomTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoomType converts raw input into a RoomType.
func ParseRoomType(value string) (RoomType, error) {
	for _, candidate := range validRoomTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid room type %q", value)
}
