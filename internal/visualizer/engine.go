package visualizer

import (
	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/internal/rooms"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// AppliedTiles maps a surface to the tile currently applied on it. One tile
// per surface, last-applied-wins.
type AppliedTiles map[enums.Surface]uuid.UUID

// Clone returns an independent copy of the mapping.
func (a AppliedTiles) Clone() AppliedTiles {
	out := make(AppliedTiles, len(a))
	for surface, tileID := range a {
		out[surface] = tileID
	}
	return out
}

// TileRef is the slice of a tile the engine needs.
type TileRef struct {
	ID         uuid.UUID
	ShowroomID uuid.UUID
	Category   enums.TileCategory
}

// ApplicationEvent is emitted on every successful apply, including re-applies
// of an already-applied tile.
type ApplicationEvent struct {
	TileID     uuid.UUID
	ShowroomID uuid.UUID
	Surface    enums.Surface
	RoomType   enums.RoomType
}

// CanApply reports whether a tile of the given category may go on the given
// surface. Floor accepts floor and both; wall accepts wall and both; any
// other surface is rejected outright.
func CanApply(category enums.TileCategory, surface enums.Surface) bool {
	switch surface {
	case enums.SurfaceFloor:
		return category == enums.TileCategoryFloor || category == enums.TileCategoryBoth
	case enums.SurfaceWall:
		return category == enums.TileCategoryWall || category == enums.TileCategoryBoth
	default:
		return false
	}
}

// Apply validates the application and returns the updated mapping plus the
// event to record. The input mapping is never mutated. A nil room rejects
// with NO_ROOM_SELECTED; a surface outside the room's set or a category
// mismatch rejects with INCOMPATIBLE_SURFACE.
func Apply(tile TileRef, room *rooms.Room, surface enums.Surface, applied AppliedTiles) (AppliedTiles, ApplicationEvent, error) {
	if room == nil {
		return nil, ApplicationEvent{}, pkgerrors.New(pkgerrors.CodeNoRoomSelected, "select a room before applying a tile")
	}
	if !room.HasSurface(surface) {
		return nil, ApplicationEvent{}, pkgerrors.New(pkgerrors.CodeIncompatibleSurface, "room has no "+surface.String()+" surface")
	}
	if !CanApply(tile.Category, surface) {
		return nil, ApplicationEvent{}, pkgerrors.New(pkgerrors.CodeIncompatibleSurface, tile.Category.String()+" tile cannot be applied to "+surface.String())
	}

	next := applied.Clone()
	next[surface] = tile.ID

	event := ApplicationEvent{
		TileID:     tile.ID,
		ShowroomID: tile.ShowroomID,
		Surface:    surface,
		RoomType:   room.Type,
	}
	return next, event, nil
}

// SurfaceAvailable reports whether the surface is open for application given
// the current state. In multi-surface rooms the wall stays unavailable until
// the floor has an entry; single-surface rooms are always available. Surfaces
// outside the room's set are never available.
func SurfaceAvailable(surface enums.Surface, applied AppliedTiles, room rooms.Room) bool {
	if !room.HasSurface(surface) {
		return false
	}
	if !room.MultiSurface() {
		return true
	}
	if surface == enums.SurfaceWall {
		_, floorSet := applied[enums.SurfaceFloor]
		return floorSet
	}
	return true
}
