package media

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
)

// Repository exposes media metadata persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a media repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a media record.
func (r *Repository) Create(ctx context.Context, media *models.Media) (*models.Media, error) {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// FindInShowroom retrieves a media record scoped to its showroom.
func (r *Repository) FindInShowroom(ctx context.Context, showroomID, id uuid.UUID) (*models.Media, error) {
	var m models.Media
	err := r.db.WithContext(ctx).
		First(&m, "id = ? AND showroom_id = ?", id, showroomID).
		Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkUploaded flips the record to uploaded and stamps the completion time.
func (r *Repository) MarkUploaded(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":      enums.MediaStatusUploaded,
			"uploaded_at": at,
		}).Error
}

// Delete removes a media record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Media{}).Error
}

// List returns one page of media rows ordered by newest first.
func (r *Repository) List(ctx context.Context, query listQuery) ([]models.Media, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("showroom_id = ?", query.showroomID)
	if query.kind != nil {
		q = q.Where("kind = ?", *query.kind)
	}
	if query.status != nil {
		q = q.Where("status = ?", *query.status)
	}
	if query.cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", query.cursor.CreatedAt, query.cursor.CreatedAt, query.cursor.ID)
	}

	var rows []models.Media
	err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(query.limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
