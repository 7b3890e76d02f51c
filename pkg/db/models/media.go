package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/pkg/enums"
)

// Media captures metadata for tile imagery and branding uploads.
type Media struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShowroomID uuid.UUID         `gorm:"column:showroom_id;type:uuid;not null;index:media_showroom_id_idx"`
	SellerID   uuid.UUID         `gorm:"column:seller_id;type:uuid;not null"`
	Kind       enums.MediaKind   `gorm:"column:kind;type:media_kind;not null"`
	Status     enums.MediaStatus `gorm:"column:status;type:media_status;not null;default:'pending'"`
	GCSKey     string            `gorm:"column:gcs_key;not null;unique"`
	FileName   string            `gorm:"column:file_name;not null"`
	MimeType   string            `gorm:"column:mime_type;not null"`
	SizeBytes  int64             `gorm:"column:size_bytes;not null"`
	UploadedAt *time.Time        `gorm:"column:uploaded_at"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}
