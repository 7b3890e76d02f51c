package visualizer

import (
	"testing"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/internal/rooms"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

func TestCanApplyTruthTable(t *testing.T) {
	cases := []struct {
		category enums.TileCategory
		surface  enums.Surface
		want     bool
	}{
		{enums.TileCategoryFloor, enums.SurfaceFloor, true},
		{enums.TileCategoryFloor, enums.SurfaceWall, false},
		{enums.TileCategoryWall, enums.SurfaceFloor, false},
		{enums.TileCategoryWall, enums.SurfaceWall, true},
		{enums.TileCategoryBoth, enums.SurfaceFloor, true},
		{enums.TileCategoryBoth, enums.SurfaceWall, true},
	}
	for _, tc := range cases {
		if got := CanApply(tc.category, tc.surface); got != tc.want {
			t.Fatalf("CanApply(%s, %s) = %v, want %v", tc.category, tc.surface, got, tc.want)
		}
	}
}

func TestCanApplyUnknownSurface(t *testing.T) {
	for _, category := range []enums.TileCategory{enums.TileCategoryFloor, enums.TileCategoryWall, enums.TileCategoryBoth} {
		if CanApply(category, enums.Surface("ceiling")) {
			t.Fatalf("unknown surface must never accept %s", category)
		}
	}
}

func TestApplyWallTileToHallFloorRejected(t *testing.T) {
	hall, _ := rooms.ByType(enums.RoomTypeHall)
	tile := TileRef{ID: uuid.New(), ShowroomID: uuid.New(), Category: enums.TileCategoryWall}

	_, _, err := Apply(tile, &hall, enums.SurfaceFloor, AppliedTiles{})
	if !pkgerrors.Is(err, pkgerrors.CodeIncompatibleSurface) {
		t.Fatalf("expected INCOMPATIBLE_SURFACE, got %v", err)
	}
}

func TestApplyBothTileToKitchenFloor(t *testing.T) {
	kitchen, _ := rooms.ByType(enums.RoomTypeKitchen)
	tile := TileRef{ID: uuid.New(), ShowroomID: uuid.New(), Category: enums.TileCategoryBoth}

	applied, event, err := Apply(tile, &kitchen, enums.SurfaceFloor, AppliedTiles{})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if applied[enums.SurfaceFloor] != tile.ID {
		t.Fatalf("floor not set to tile, got %v", applied)
	}
	if event.TileID != tile.ID || event.ShowroomID != tile.ShowroomID {
		t.Fatalf("event identity mismatch: %+v", event)
	}
	if event.Surface != enums.SurfaceFloor || event.RoomType != enums.RoomTypeKitchen {
		t.Fatalf("event context mismatch: %+v", event)
	}

	if !SurfaceAvailable(enums.SurfaceWall, applied, kitchen) {
		t.Fatal("wall must open once the floor is set")
	}
}

func TestApplyNoRoomSelected(t *testing.T) {
	tile := TileRef{ID: uuid.New(), Category: enums.TileCategoryFloor}
	_, _, err := Apply(tile, nil, enums.SurfaceFloor, AppliedTiles{})
	if !pkgerrors.Is(err, pkgerrors.CodeNoRoomSelected) {
		t.Fatalf("expected NO_ROOM_SELECTED, got %v", err)
	}
}

func TestApplySurfaceOutsideRoomRejected(t *testing.T) {
	hall, _ := rooms.ByType(enums.RoomTypeHall)
	tile := TileRef{ID: uuid.New(), Category: enums.TileCategoryBoth}

	_, _, err := Apply(tile, &hall, enums.SurfaceWall, AppliedTiles{})
	if !pkgerrors.Is(err, pkgerrors.CodeIncompatibleSurface) {
		t.Fatalf("expected INCOMPATIBLE_SURFACE for off-room surface, got %v", err)
	}
}

func TestApplyIdempotent(t *testing.T) {
	washroom, _ := rooms.ByType(enums.RoomTypeWashroom)
	tile := TileRef{ID: uuid.New(), ShowroomID: uuid.New(), Category: enums.TileCategoryFloor}

	once, _, err := Apply(tile, &washroom, enums.SurfaceFloor, AppliedTiles{})
	if err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	twice, event, err := Apply(tile, &washroom, enums.SurfaceFloor, once)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	if len(twice) != len(once) || twice[enums.SurfaceFloor] != once[enums.SurfaceFloor] {
		t.Fatalf("re-apply changed state: %v vs %v", once, twice)
	}
	// Re-applies still emit the event.
	if event.TileID != tile.ID {
		t.Fatalf("re-apply must still produce an event, got %+v", event)
	}
}

func TestApplyLastWins(t *testing.T) {
	kitchen, _ := rooms.ByType(enums.RoomTypeKitchen)
	first := TileRef{ID: uuid.New(), ShowroomID: uuid.New(), Category: enums.TileCategoryFloor}
	second := TileRef{ID: uuid.New(), ShowroomID: first.ShowroomID, Category: enums.TileCategoryBoth}

	applied, _, err := Apply(first, &kitchen, enums.SurfaceFloor, AppliedTiles{})
	if err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	applied, _, err = Apply(second, &kitchen, enums.SurfaceFloor, applied)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if applied[enums.SurfaceFloor] != second.ID {
		t.Fatalf("expected last-applied tile to win, got %s", applied[enums.SurfaceFloor])
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	kitchen, _ := rooms.ByType(enums.RoomTypeKitchen)
	tile := TileRef{ID: uuid.New(), Category: enums.TileCategoryBoth}

	original := AppliedTiles{}
	if _, _, err := Apply(tile, &kitchen, enums.SurfaceFloor, original); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(original) != 0 {
		t.Fatalf("input mapping was mutated: %v", original)
	}
}

func TestSurfaceAvailableWallGatedOnFloor(t *testing.T) {
	kitchen, _ := rooms.ByType(enums.RoomTypeKitchen)

	if SurfaceAvailable(enums.SurfaceWall, AppliedTiles{}, kitchen) {
		t.Fatal("wall must be unavailable while the floor is unset")
	}
	withWallOnly := AppliedTiles{enums.SurfaceWall: uuid.New()}
	if SurfaceAvailable(enums.SurfaceWall, withWallOnly, kitchen) {
		t.Fatal("a wall entry alone does not open the wall")
	}
	withFloor := AppliedTiles{enums.SurfaceFloor: uuid.New()}
	if !SurfaceAvailable(enums.SurfaceWall, withFloor, kitchen) {
		t.Fatal("wall must open once the floor is set")
	}
	if !SurfaceAvailable(enums.SurfaceFloor, AppliedTiles{}, kitchen) {
		t.Fatal("floor is always available in its room")
	}
}

func TestSurfaceAvailableSingleSurfaceRoom(t *testing.T) {
	hall, _ := rooms.ByType(enums.RoomTypeHall)
	if !SurfaceAvailable(enums.SurfaceFloor, AppliedTiles{}, hall) {
		t.Fatal("single-surface room must always be available")
	}
	if SurfaceAvailable(enums.SurfaceWall, AppliedTiles{}, hall) {
		t.Fatal("surfaces outside the room set are never available")
	}
}
