package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tilevista/tilevista-backend/pkg/enums"
)

// Tile represents a catalog listing inside a showroom.
type Tile struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShowroomID uuid.UUID          `gorm:"column:showroom_id;type:uuid;not null;index:tiles_showroom_id_idx"`
	SellerID   uuid.UUID          `gorm:"column:seller_id;type:uuid;not null;index:tiles_seller_id_idx"`
	Name       string             `gorm:"column:name;not null"`
	Category   enums.TileCategory `gorm:"column:category;type:tile_category;not null"`
	Size       string             `gorm:"column:size;not null"`
	Price      decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	InStock    bool               `gorm:"column:in_stock;not null;default:true"`
	ImageURL   *string            `gorm:"column:image_url"`
	TextureURL *string            `gorm:"column:texture_url"`
	QRImageURL *string            `gorm:"column:qr_image_url"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
