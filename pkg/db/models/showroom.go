package models

import (
	"time"

	"github.com/google/uuid"
)

// Showroom is the tenant boundary for a seller's public catalog.
type Showroom struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID       uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index:showrooms_seller_id_idx"`
	Name           string    `gorm:"column:name;not null"`
	Slug           string    `gorm:"column:slug;not null;uniqueIndex"`
	PrimaryColor   *string   `gorm:"column:primary_color"`
	SecondaryColor *string   `gorm:"column:secondary_color"`
	LogoURL        *string   `gorm:"column:logo_url"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
