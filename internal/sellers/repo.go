package sellers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// Repository exposes seller and showroom persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sellers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a seller by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// FindByUserID loads the seller profile attached to a user account.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// Create inserts a seller row.
func (r *Repository) Create(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	if err := r.db.WithContext(ctx).Create(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

// Update saves the seller profile.
func (r *Repository) Update(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	if err := r.db.WithContext(ctx).Save(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

// SetStatus updates only the account status.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status enums.SellerStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Seller{}).
		Where("id = ?", id).
		UpdateColumn("status", status).
		Error
}

// List returns one admin page of sellers ordered by newest first.
func (r *Repository) List(ctx context.Context, params ListParams) (*SellerListResult, error) {
	pageSize := pagination.NormalizeLimit(params.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Pagination.Limit)

	cursor, err := pagination.ParseCursor(strings.TrimSpace(params.Pagination.Cursor))
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.Seller{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Seller
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

	result := &SellerListResult{
		Sellers:    make([]SellerDTO, 0, len(rows)),
		NextCursor: nextCursor,
	}
	for i := range rows {
		result.Sellers = append(result.Sellers, NewSellerDTO(&rows[i]))
	}
	return result, nil
}

// ShowroomRepository exposes showroom persistence.
type ShowroomRepository struct {
	db *gorm.DB
}

// NewShowroomRepository constructs a showroom repo bound to the provided GORM DB.
func NewShowroomRepository(db *gorm.DB) *ShowroomRepository {
	return &ShowroomRepository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *ShowroomRepository) WithTx(tx *gorm.DB) *ShowroomRepository {
	return &ShowroomRepository{db: tx}
}

// FindByID loads a showroom by its UUID.
func (r *ShowroomRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Showroom, error) {
	var showroom models.Showroom
	if err := r.db.WithContext(ctx).First(&showroom, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &showroom, nil
}

// FindBySellerID loads the seller's showroom.
func (r *ShowroomRepository) FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Showroom, error) {
	var showroom models.Showroom
	if err := r.db.WithContext(ctx).First(&showroom, "seller_id = ?", sellerID).Error; err != nil {
		return nil, err
	}
	return &showroom, nil
}

// FindBySlug resolves the public showroom URL slug.
func (r *ShowroomRepository) FindBySlug(ctx context.Context, slug string) (*models.Showroom, error) {
	var showroom models.Showroom
	if err := r.db.WithContext(ctx).First(&showroom, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &showroom, nil
}

// Create inserts a showroom row.
func (r *ShowroomRepository) Create(ctx context.Context, showroom *models.Showroom) (*models.Showroom, error) {
	if err := r.db.WithContext(ctx).Create(showroom).Error; err != nil {
		return nil, err
	}
	return showroom, nil
}

// Update saves showroom branding.
func (r *ShowroomRepository) Update(ctx context.Context, showroom *models.Showroom) (*models.Showroom, error) {
	if err := r.db.WithContext(ctx).Save(showroom).Error; err != nil {
		return nil, err
	}
	return showroom, nil
}
