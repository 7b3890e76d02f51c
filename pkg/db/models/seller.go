package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tilevista/tilevista-backend/pkg/enums"
)

// Seller represents a tile seller account bound to a user profile.
type Seller struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	BusinessName    string             `gorm:"column:business_name;not null"`
	BusinessAddress *string            `gorm:"column:business_address"`
	Phone           *string            `gorm:"column:phone"`
	Website         *string            `gorm:"column:website"`
	LogoURL         *string            `gorm:"column:logo_url"`
	Specialties     pq.StringArray     `gorm:"column:specialties;type:text[]"`
	Status          enums.SellerStatus `gorm:"column:status;type:seller_status;not null;default:'active'"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
