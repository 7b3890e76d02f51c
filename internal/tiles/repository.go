package tiles

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// Repository encapsulates tile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the tile without scoping.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tile, error) {
	var tile models.Tile
	if err := r.db.WithContext(ctx).First(&tile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tile, nil
}

// FindInShowroom loads the tile only when it belongs to the showroom. QR scan
// lookups go through here so a payload cannot address another tenant's tile.
func (r *Repository) FindInShowroom(ctx context.Context, showroomID, tileID uuid.UUID) (*models.Tile, error) {
	var tile models.Tile
	err := r.db.WithContext(ctx).
		First(&tile, "id = ? AND showroom_id = ?", tileID, showroomID).
		Error
	if err != nil {
		return nil, err
	}
	return &tile, nil
}

// Create inserts a new tile row.
func (r *Repository) Create(ctx context.Context, tile *models.Tile) (*models.Tile, error) {
	if err := r.db.WithContext(ctx).Create(tile).Error; err != nil {
		return nil, err
	}
	return tile, nil
}

// Update saves an existing tile row.
func (r *Repository) Update(ctx context.Context, tile *models.Tile) (*models.Tile, error) {
	if err := r.db.WithContext(ctx).Save(tile).Error; err != nil {
		return nil, err
	}
	return tile, nil
}

// Delete removes a tile by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tile{}).Error
}

// ListByShowroom returns one catalog page ordered by newest first.
func (r *Repository) ListByShowroom(ctx context.Context, showroomID uuid.UUID, params ListParams) (*TileListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Pagination.Limit)

	cursor, err := pagination.ParseCursor(strings.TrimSpace(params.Pagination.Cursor))
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Tile{}).
		Where("showroom_id = ?", showroomID)

	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.InStock != nil {
		query = query.Where("in_stock = ?", *params.InStock)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Tile
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	result := &TileListResult{
		Tiles:      make([]TileDTO, 0, len(rows)),
		NextCursor: nextCursor,
	}
	for i := range rows {
		result.Tiles = append(result.Tiles, NewTileDTO(&rows[i]))
	}
	return result, nil
}

// ListBySeller returns every tile a seller owns, ordered by name for stable
// dashboards and QR bundles.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Tile, error) {
	var rows []models.Tile
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// CountByShowroom returns the catalog size for a showroom.
func (r *Repository) CountByShowroom(ctx context.Context, showroomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tile{}).
		Where("showroom_id = ?", showroomID).
		Count(&count).
		Error
	return count, err
}

// TouchQRImage stores the generated QR image URL for a tile.
func (r *Repository) TouchQRImage(ctx context.Context, tileID uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Tile{}).
		Where("id = ?", tileID).
		Updates(map[string]any{"qr_image_url": url, "updated_at": time.Now()}).
		Error
}
