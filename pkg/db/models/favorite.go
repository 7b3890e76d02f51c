package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a customer to a saved tile.
type Favorite struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index:favorites_customer_id_idx;uniqueIndex:favorites_customer_tile_key"`
	TileID     uuid.UUID `gorm:"column:tile_id;type:uuid;not null;index:favorites_tile_id_idx;uniqueIndex:favorites_customer_tile_key"`
	ShowroomID uuid.UUID `gorm:"column:showroom_id;type:uuid;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
