package tiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

func TestGetDetailRecordsView(t *testing.T) {
	env := newTestEnv(t)
	tile := env.seedTile(enums.TileCategoryFloor)

	dto, err := env.service.GetDetail(context.Background(), tile.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if dto.ID != tile.ID || dto.Category != enums.TileCategoryFloor {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if len(env.recorder.views) != 1 {
		t.Fatalf("expected one view event, got %d", len(env.recorder.views))
	}
	view := env.recorder.views[0]
	if view.tileID != tile.ID || view.showroomID != tile.ShowroomID || view.source != ViewSourceCatalog {
		t.Fatalf("unexpected view event: %+v", view)
	}
}

func TestGetDetailUnknownTile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.GetDetail(context.Background(), uuid.New())
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(env.recorder.views) != 0 {
		t.Fatal("missing tile must not record a view")
	}
}

func TestResolveScanScopedToShowroom(t *testing.T) {
	env := newTestEnv(t)
	tile := env.seedTile(enums.TileCategoryBoth)

	dto, err := env.service.ResolveScan(context.Background(), tile.ShowroomID, tile.ID)
	if err != nil {
		t.Fatalf("resolve scan: %v", err)
	}
	if dto.ID != tile.ID {
		t.Fatalf("unexpected tile: %+v", dto)
	}
	if env.recorder.views[0].source != ViewSourceQRScan {
		t.Fatalf("expected qr_scan source, got %q", env.recorder.views[0].source)
	}

	_, err = env.service.ResolveScan(context.Background(), uuid.New(), tile.ID)
	if !pkgerrors.Is(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for foreign showroom, got %v", err)
	}
}

func TestCreateAssignsSellerShowroom(t *testing.T) {
	env := newTestEnv(t)

	dto, err := env.service.Create(context.Background(), env.seller.ID, CreateTileInput{
		Name:     "Carrara White",
		Category: enums.TileCategoryWall,
		Size:     "60x60",
		Price:    decimal.RequireFromString("24.50"),
		InStock:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ShowroomID != env.showroom.ID || dto.SellerID != env.seller.ID {
		t.Fatalf("ownership not assigned: %+v", dto)
	}
	if !dto.Price.Equal(decimal.RequireFromString("24.50")) {
		t.Fatalf("unexpected price: %s", dto.Price)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name  string
		input CreateTileInput
	}{
		{"missing name", CreateTileInput{Category: enums.TileCategoryFloor, Size: "60x60"}},
		{"bad category", CreateTileInput{Name: "Tile", Category: enums.TileCategory("ceiling"), Size: "60x60"}},
		{"missing size", CreateTileInput{Name: "Tile", Category: enums.TileCategoryFloor}},
		{"negative price", CreateTileInput{Name: "Tile", Category: enums.TileCategoryFloor, Size: "60x60", Price: decimal.RequireFromString("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.service.Create(context.Background(), env.seller.ID, tc.input); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestMutationsRequireActiveSeller(t *testing.T) {
	env := newTestEnv(t)
	env.seller.Status = enums.SellerStatusSuspended

	_, err := env.service.Create(context.Background(), env.seller.ID, CreateTileInput{
		Name:     "Tile",
		Category: enums.TileCategoryFloor,
		Size:     "60x60",
	})
	if !pkgerrors.Is(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden for suspended seller, got %v", err)
	}
}

func TestUpdateRejectsForeignTile(t *testing.T) {
	env := newTestEnv(t)
	tile := env.seedTile(enums.TileCategoryFloor)
	env.repo.byID[tile.ID].SellerID = uuid.New()

	name := "Renamed"
	_, err := env.service.Update(context.Background(), env.seller.ID, tile.ID, UpdateTileInput{Name: &name})
	if !pkgerrors.Is(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateAppliesPartialInput(t *testing.T) {
	env := newTestEnv(t)
	tile := env.seedTile(enums.TileCategoryFloor)

	inStock := false
	price := decimal.RequireFromString("31.00")
	dto, err := env.service.Update(context.Background(), env.seller.ID, tile.ID, UpdateTileInput{
		InStock: &inStock,
		Price:   &price,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.InStock || !dto.Price.Equal(price) {
		t.Fatalf("update not applied: %+v", dto)
	}
	if dto.Name != tile.Name || dto.Category != enums.TileCategoryFloor {
		t.Fatalf("untouched fields changed: %+v", dto)
	}
}

func TestDeleteRemovesOwnedTile(t *testing.T) {
	env := newTestEnv(t)
	tile := env.seedTile(enums.TileCategoryWall)

	if err := env.service.Delete(context.Background(), env.seller.ID, tile.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := env.repo.byID[tile.ID]; ok {
		t.Fatal("tile not removed")
	}
}

type recordedView struct {
	tileID     uuid.UUID
	showroomID uuid.UUID
	source     string
}

type fakeRecorder struct {
	views []recordedView
}

func (f *fakeRecorder) RecordView(_ context.Context, tileID, showroomID uuid.UUID, source string) {
	f.views = append(f.views, recordedView{tileID: tileID, showroomID: showroomID, source: source})
}

type fakeTileRepo struct {
	byID map[uuid.UUID]*models.Tile
}

func (f *fakeTileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Tile, error) {
	tile, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *tile
	return &copy, nil
}

func (f *fakeTileRepo) FindInShowroom(_ context.Context, showroomID, tileID uuid.UUID) (*models.Tile, error) {
	tile, ok := f.byID[tileID]
	if !ok || tile.ShowroomID != showroomID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *tile
	return &copy, nil
}

func (f *fakeTileRepo) Create(_ context.Context, tile *models.Tile) (*models.Tile, error) {
	if tile.ID == uuid.Nil {
		tile.ID = uuid.New()
	}
	stored := *tile
	f.byID[tile.ID] = &stored
	return tile, nil
}

func (f *fakeTileRepo) Update(_ context.Context, tile *models.Tile) (*models.Tile, error) {
	stored := *tile
	f.byID[tile.ID] = &stored
	return tile, nil
}

func (f *fakeTileRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeTileRepo) ListByShowroom(_ context.Context, showroomID uuid.UUID, params ListParams) (*TileListResult, error) {
	result := &TileListResult{Tiles: []TileDTO{}}
	for _, tile := range f.byID {
		if tile.ShowroomID != showroomID {
			continue
		}
		if params.Category != nil && tile.Category != *params.Category {
			continue
		}
		result.Tiles = append(result.Tiles, NewTileDTO(tile))
	}
	return result, nil
}

func (f *fakeTileRepo) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]models.Tile, error) {
	var rows []models.Tile
	for _, tile := range f.byID {
		if tile.SellerID == sellerID {
			rows = append(rows, *tile)
		}
	}
	return rows, nil
}

type fakeSellerRepo struct {
	seller *models.Seller
}

func (f *fakeSellerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Seller, error) {
	if f.seller == nil || f.seller.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.seller, nil
}

type fakeShowroomRepo struct {
	showroom *models.Showroom
}

func (f *fakeShowroomRepo) FindBySellerID(_ context.Context, sellerID uuid.UUID) (*models.Showroom, error) {
	if f.showroom == nil || f.showroom.SellerID != sellerID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.showroom, nil
}

type testEnv struct {
	service  Service
	repo     *fakeTileRepo
	recorder *fakeRecorder
	seller   *models.Seller
	showroom *models.Showroom
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	seller := &models.Seller{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		BusinessName: "Marble Works",
		Status:       enums.SellerStatusActive,
	}
	showroom := &models.Showroom{
		ID:       uuid.New(),
		SellerID: seller.ID,
		Name:     "Marble Works Showroom",
		Slug:     "marble-works",
	}
	repo := &fakeTileRepo{byID: map[uuid.UUID]*models.Tile{}}
	recorder := &fakeRecorder{}

	svc, err := NewService(ServiceParams{
		Tiles:     repo,
		Sellers:   &fakeSellerRepo{seller: seller},
		Showrooms: &fakeShowroomRepo{showroom: showroom},
		Recorder:  recorder,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	return &testEnv{service: svc, repo: repo, recorder: recorder, seller: seller, showroom: showroom}
}

func (e *testEnv) seedTile(category enums.TileCategory) *models.Tile {
	tile := &models.Tile{
		ID:         uuid.New(),
		ShowroomID: e.showroom.ID,
		SellerID:   e.seller.ID,
		Name:       "Seeded Tile",
		Category:   category,
		Size:       "60x60",
		Price:      decimal.RequireFromString("19.99"),
		InStock:    true,
	}
	stored := *tile
	e.repo.byID[tile.ID] = &stored
	return tile
}
