package tiles

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

func setupTilesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS tiles (
  id TEXT PRIMARY KEY,
  showroom_id TEXT NOT NULL,
  seller_id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  size TEXT NOT NULL,
  price NUMERIC NOT NULL,
  in_stock INTEGER NOT NULL DEFAULT 1,
  image_url TEXT,
  texture_url TEXT,
  qr_image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedTile(t *testing.T, db *gorm.DB, showroomID, sellerID uuid.UUID, name string, createdAt time.Time) models.Tile {
	t.Helper()
	tile := models.Tile{
		ID:         uuid.New(),
		ShowroomID: showroomID,
		SellerID:   sellerID,
		Name:       name,
		Category:   enums.TileCategoryFloor,
		Size:       "60x60",
		Price:      decimal.NewFromFloat(24.99),
		InStock:    true,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&tile).Error)
	return tile
}

func TestListByShowroomPagesNewestFirst(t *testing.T) {
	db := setupTilesTestDB(t)
	repo := NewRepository(db)

	showroomID := uuid.New()
	sellerID := uuid.New()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedTile(t, db, showroomID, sellerID, "Tile", base.Add(time.Duration(i)*time.Minute))
	}
	seedTile(t, db, uuid.New(), sellerID, "Other showroom", base)

	page, err := repo.ListByShowroom(context.Background(), showroomID, ListParams{
		Pagination: pagination.Params{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Tiles, 2)
	assert.NotEmpty(t, page.NextCursor)
	assert.True(t, page.Tiles[0].CreatedAt.After(page.Tiles[1].CreatedAt))

	rest, err := repo.ListByShowroom(context.Background(), showroomID, ListParams{
		Pagination: pagination.Params{Limit: 2, Cursor: page.NextCursor},
	})
	require.NoError(t, err)
	require.Len(t, rest.Tiles, 1)
	assert.Empty(t, rest.NextCursor)
}

func TestListByShowroomFilters(t *testing.T) {
	db := setupTilesTestDB(t)
	repo := NewRepository(db)

	showroomID := uuid.New()
	sellerID := uuid.New()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	inStock := seedTile(t, db, showroomID, sellerID, "Available", base)
	sold := seedTile(t, db, showroomID, sellerID, "Sold out", base.Add(time.Minute))
	require.NoError(t, db.Model(&models.Tile{}).Where("id = ?", sold.ID).Update("in_stock", false).Error)

	want := true
	page, err := repo.ListByShowroom(context.Background(), showroomID, ListParams{
		InStock: &want,
	})
	require.NoError(t, err)
	require.Len(t, page.Tiles, 1)
	assert.Equal(t, inStock.ID, page.Tiles[0].ID)
}

func TestFindInShowroomScopesTenant(t *testing.T) {
	db := setupTilesTestDB(t)
	repo := NewRepository(db)

	showroomID := uuid.New()
	tile := seedTile(t, db, showroomID, uuid.New(), "Scoped", time.Now().UTC())

	found, err := repo.FindInShowroom(context.Background(), showroomID, tile.ID)
	require.NoError(t, err)
	assert.Equal(t, tile.ID, found.ID)

	_, err = repo.FindInShowroom(context.Background(), uuid.New(), tile.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTouchQRImage(t *testing.T) {
	db := setupTilesTestDB(t)
	repo := NewRepository(db)

	tile := seedTile(t, db, uuid.New(), uuid.New(), "QR", time.Now().UTC())
	require.NoError(t, repo.TouchQRImage(context.Background(), tile.ID, "https://cdn.tilevista.app/qr.png"))

	reloaded, err := repo.FindByID(context.Background(), tile.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.QRImageURL)
	assert.Equal(t, "https://cdn.tilevista.app/qr.png", *reloaded.QRImageURL)
}
