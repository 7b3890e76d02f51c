package visualizer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

type memoryStore struct {
	sessions map[string]Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]Session)}
}

func (m *memoryStore) Load(ctx context.Context, sessionID string) (Session, error) {
	if session, ok := m.sessions[sessionID]; ok {
		return session, nil
	}
	return NewSession(), nil
}

func (m *memoryStore) Save(ctx context.Context, sessionID string, session Session) error {
	m.sessions[sessionID] = session
	return nil
}

type fakeTileReader struct {
	tiles map[uuid.UUID]*models.Tile
}

func (f *fakeTileReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Tile, error) {
	tile, ok := f.tiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tile, nil
}

type fakeRecorder struct {
	events []ApplicationEvent
}

func (f *fakeRecorder) RecordApplication(ctx context.Context, event ApplicationEvent) {
	f.events = append(f.events, event)
}

func newTestService(t *testing.T, tiles ...*models.Tile) (Service, *memoryStore, *fakeRecorder) {
	t.Helper()

	store := newMemoryStore()
	reader := &fakeTileReader{tiles: make(map[uuid.UUID]*models.Tile)}
	for _, tile := range tiles {
		reader.tiles[tile.ID] = tile
	}
	recorder := &fakeRecorder{}

	svc, err := NewService(ServiceParams{Store: store, Tiles: reader, Recorder: recorder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store, recorder
}

func newTile(category enums.TileCategory) *models.Tile {
	return &models.Tile{
		ID:         uuid.New(),
		ShowroomID: uuid.New(),
		SellerID:   uuid.New(),
		Name:       "Test Tile",
		Category:   category,
	}
}

func TestApplyTileWithoutRoomRejected(t *testing.T) {
	tile := newTile(enums.TileCategoryFloor)
	svc, _, recorder := newTestService(t, tile)

	_, err := svc.ApplyTile(context.Background(), "sid", tile.ID, enums.SurfaceFloor)
	if !pkgerrors.Is(err, pkgerrors.CodeNoRoomSelected) {
		t.Fatalf("expected NO_ROOM_SELECTED, got %v", err)
	}
	if len(recorder.events) != 0 {
		t.Fatal("rejected apply must not record an event")
	}
}

func TestApplyTileHappyPath(t *testing.T) {
	tile := newTile(enums.TileCategoryBoth)
	svc, store, recorder := newTestService(t, tile)
	ctx := context.Background()

	if _, err := svc.SelectRoom(ctx, "sid", enums.RoomTypeKitchen); err != nil {
		t.Fatalf("select room: %v", err)
	}

	state, err := svc.ApplyTile(ctx, "sid", tile.ID, enums.SurfaceFloor)
	if err != nil {
		t.Fatalf("apply tile: %v", err)
	}

	if len(state.Surfaces) != 2 {
		t.Fatalf("kitchen state should expose two surfaces, got %d", len(state.Surfaces))
	}
	floor := state.Surfaces[0]
	wall := state.Surfaces[1]
	if floor.AppliedTileID == nil || *floor.AppliedTileID != tile.ID {
		t.Fatalf("floor not applied: %+v", floor)
	}
	if !wall.Available {
		t.Fatal("wall should become available after floor application")
	}

	if len(recorder.events) != 1 {
		t.Fatalf("expected one event, got %d", len(recorder.events))
	}
	event := recorder.events[0]
	if event.TileID != tile.ID || event.ShowroomID != tile.ShowroomID {
		t.Fatalf("event identity mismatch: %+v", event)
	}
	if event.Surface != enums.SurfaceFloor || event.RoomType != enums.RoomTypeKitchen {
		t.Fatalf("event context mismatch: %+v", event)
	}

	saved := store.sessions["sid"]
	if saved.Applied[enums.SurfaceFloor] != tile.ID {
		t.Fatalf("session not persisted: %v", saved.Applied)
	}
}

func TestApplyTileReapplyReemitsEvent(t *testing.T) {
	tile := newTile(enums.TileCategoryFloor)
	svc, _, recorder := newTestService(t, tile)
	ctx := context.Background()

	if _, err := svc.SelectRoom(ctx, "sid", enums.RoomTypeHall); err != nil {
		t.Fatalf("select room: %v", err)
	}
	if _, err := svc.ApplyTile(ctx, "sid", tile.ID, enums.SurfaceFloor); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := svc.ApplyTile(ctx, "sid", tile.ID, enums.SurfaceFloor); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if len(recorder.events) != 2 {
		t.Fatalf("re-apply must re-emit the event, got %d events", len(recorder.events))
	}
}

func TestApplyTileIncompatibleKeepsAppliedState(t *testing.T) {
	floorTile := newTile(enums.TileCategoryFloor)
	wallOnly := newTile(enums.TileCategoryWall)
	svc, _, _ := newTestService(t, floorTile, wallOnly)
	ctx := context.Background()

	if _, err := svc.SelectRoom(ctx, "sid", enums.RoomTypeWashroom); err != nil {
		t.Fatalf("select room: %v", err)
	}
	if _, err := svc.ApplyTile(ctx, "sid", floorTile.ID, enums.SurfaceFloor); err != nil {
		t.Fatalf("apply floor tile: %v", err)
	}

	_, err := svc.ApplyTile(ctx, "sid", wallOnly.ID, enums.SurfaceFloor)
	if !pkgerrors.Is(err, pkgerrors.CodeIncompatibleSurface) {
		t.Fatalf("expected INCOMPATIBLE_SURFACE, got %v", err)
	}

	// Rejection does not discard the already-applied floor.
	state, err := svc.GetState(ctx, "sid")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Surfaces[0].AppliedTileID == nil || *state.Surfaces[0].AppliedTileID != floorTile.ID {
		t.Fatalf("rejection discarded applied floor: %+v", state.Surfaces[0])
	}
}

func TestSelectRoomResetsAppliedTiles(t *testing.T) {
	tile := newTile(enums.TileCategoryBoth)
	svc, store, _ := newTestService(t, tile)
	ctx := context.Background()

	if _, err := svc.SelectRoom(ctx, "sid", enums.RoomTypeKitchen); err != nil {
		t.Fatalf("select kitchen: %v", err)
	}
	if _, err := svc.ApplyTile(ctx, "sid", tile.ID, enums.SurfaceFloor); err != nil {
		t.Fatalf("apply: %v", err)
	}

	state, err := svc.SelectRoom(ctx, "sid", enums.RoomTypeWashroom)
	if err != nil {
		t.Fatalf("select washroom: %v", err)
	}
	for _, surface := range state.Surfaces {
		if surface.AppliedTileID != nil {
			t.Fatalf("room change must reset applied tiles: %+v", surface)
		}
	}
	if len(store.sessions["sid"].Applied) != 0 {
		t.Fatalf("persisted session kept stale tiles: %v", store.sessions["sid"].Applied)
	}
}

func TestSelectRoomUnknownType(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.SelectRoom(context.Background(), "sid", enums.RoomType("garage")); err == nil {
		t.Fatal("expected error for unknown room type")
	}
}

func TestApplyTileUnknownTile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.SelectRoom(ctx, "sid", enums.RoomTypeHall); err != nil {
		t.Fatalf("select room: %v", err)
	}
	_, err := svc.ApplyTile(ctx, "sid", uuid.New(), enums.SurfaceFloor)
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
