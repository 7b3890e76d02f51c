package favorites

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/internal/tiles"
	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// Repository encapsulates favorites persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a favorite and ignores duplicates, so repeated toggles from a
// racing client collapse into one row.
func (r *Repository) Add(ctx context.Context, customerID, tileID, showroomID uuid.UUID) error {
	if customerID == uuid.Nil || tileID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO favorites (customer_id, tile_id, showroom_id) VALUES (?, ?, ?) ON CONFLICT (customer_id, tile_id) DO NOTHING`, customerID, tileID, showroomID).
		Error
}

// Remove deletes the favorite if it exists.
func (r *Repository) Remove(ctx context.Context, customerID, tileID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND tile_id = ?", customerID, tileID).
		Delete(&models.Favorite{}).
		Error
}

// Exists reports current membership for a customer-tile pair.
func (r *Repository) Exists(ctx context.Context, customerID, tileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("customer_id = ? AND tile_id = ?", customerID, tileID).
		Count(&count).
		Error
	return count > 0, err
}

// ListItems returns a page of favorited tiles, newest favorite first.
func (r *Repository) ListItems(ctx context.Context, customerID uuid.UUID, cursor string, limit int) (FavoritesPageDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return FavoritesPageDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Table("favorites f").
		Select(strings.Join([]string{
			"f.id AS favorite_id",
			"f.created_at AS favorited_at",
			"t.id AS tile_id",
			"t.showroom_id",
			"t.seller_id",
			"t.name",
			"t.category",
			"t.size",
			"t.price",
			"t.in_stock",
			"t.image_url",
			"t.texture_url",
			"t.qr_image_url",
			"t.created_at AS tile_created_at",
			"t.updated_at AS tile_updated_at",
		}, ", ")).
		Joins("JOIN tiles t ON t.id = f.tile_id").
		Where("f.customer_id = ?", customerID)

	if decodedCursor != nil {
		query = query.Where("(f.created_at < ?) OR (f.created_at = ? AND f.id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("f.created_at DESC").Order("f.id DESC").Limit(limitWithBuffer)

	var records []favoriteTileRecord
	if err := query.Scan(&records).Error; err != nil {
		return FavoritesPageDTO{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.FavoritedAt, ID: last.FavoriteID})
	}

	items := make([]FavoriteItemDTO, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDTO())
	}

	return FavoritesPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// ListIDs returns only the favorited tile IDs.
func (r *Repository) ListIDs(ctx context.Context, customerID uuid.UUID, cursor string, limit int) (FavoriteIDsDTO, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return FavoriteIDsDTO{}, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Select("id AS favorite_id", "created_at AS favorited_at", "tile_id").
		Where("customer_id = ?", customerID)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	type idRecord struct {
		FavoriteID  uuid.UUID `gorm:"column:favorite_id"`
		FavoritedAt time.Time `gorm:"column:favorited_at"`
		TileID      uuid.UUID `gorm:"column:tile_id"`
	}

	var records []idRecord
	if err := query.Scan(&records).Error; err != nil {
		return FavoriteIDsDTO{}, err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.FavoritedAt, ID: last.FavoriteID})
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.TileID)
	}

	return FavoriteIDsDTO{TileIDs: ids, NextCursor: nextCursor}, nil
}

type favoriteTileRecord struct {
	FavoriteID  uuid.UUID `gorm:"column:favorite_id"`
	FavoritedAt time.Time `gorm:"column:favorited_at"`

	TileID        uuid.UUID          `gorm:"column:tile_id"`
	ShowroomID    uuid.UUID          `gorm:"column:showroom_id"`
	SellerID      uuid.UUID          `gorm:"column:seller_id"`
	Name          string             `gorm:"column:name"`
	Category      enums.TileCategory `gorm:"column:category"`
	Size          string             `gorm:"column:size"`
	Price         decimal.Decimal    `gorm:"column:price"`
	InStock       bool               `gorm:"column:in_stock"`
	ImageURL      *string            `gorm:"column:image_url"`
	TextureURL    *string            `gorm:"column:texture_url"`
	QRImageURL    *string            `gorm:"column:qr_image_url"`
	TileCreatedAt time.Time          `gorm:"column:tile_created_at"`
	TileUpdatedAt time.Time          `gorm:"column:tile_updated_at"`
}

func (r favoriteTileRecord) toDTO() FavoriteItemDTO {
	return FavoriteItemDTO{
		Tile: tiles.TileDTO{
			ID:         r.TileID,
			ShowroomID: r.ShowroomID,
			SellerID:   r.SellerID,
			Name:       r.Name,
			Category:   r.Category,
			Size:       r.Size,
			Price:      r.Price,
			InStock:    r.InStock,
			ImageURL:   r.ImageURL,
			TextureURL: r.TextureURL,
			QRImageURL: r.QRImageURL,
			CreatedAt:  r.TileCreatedAt,
			UpdatedAt:  r.TileUpdatedAt,
		},
		FavoritedAt: r.FavoritedAt,
	}
}
