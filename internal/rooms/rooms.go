package rooms

import (
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// Room is a fixed template for a visualizable space. Surfaces are fully
// determined by the room type and are not user-editable.
type Room struct {
	Type     enums.RoomType  `json:"type"`
	Surfaces []enums.Surface `json:"surfaces"`
}

var templates = map[enums.RoomType][]enums.Surface{
	enums.RoomTypeHall:     {enums.SurfaceFloor},
	enums.RoomTypeWashroom: {enums.SurfaceFloor, enums.SurfaceWall},
	enums.RoomTypeKitchen:  {enums.SurfaceFloor, enums.SurfaceWall},
}

// ByType returns the template for the given room type.
func ByType(roomType enums.RoomType) (Room, error) {
	surfaces, ok := templates[roomType]
	if !ok {
		return Room{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown room type")
	}
	return Room{Type: roomType, Surfaces: append([]enums.Surface(nil), surfaces...)}, nil
}

// All returns every room template in a stable order.
func All() []Room {
	ordered := []enums.RoomType{enums.RoomTypeHall, enums.RoomTypeWashroom, enums.RoomTypeKitchen}
	out := make([]Room, 0, len(ordered))
	for _, rt := range ordered {
		room, _ := ByType(rt)
		out = append(out, room)
	}
	return out
}

// HasSurface reports whether the surface belongs to the room's surface set.
func (r Room) HasSurface(surface enums.Surface) bool {
	for _, s := range r.Surfaces {
		if s == surface {
			return true
		}
	}
	return false
}

// MultiSurface reports whether the room exposes more than one surface.
func (r Room) MultiSurface() bool {
	return len(r.Surfaces) > 1
}
