package sellers

import (
	"time"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// SellerDTO is the seller profile payload returned to clients.
type SellerDTO struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"user_id"`
	BusinessName    string             `json:"business_name"`
	BusinessAddress *string            `json:"business_address,omitempty"`
	Phone           *string            `json:"phone,omitempty"`
	Website         *string            `json:"website,omitempty"`
	LogoURL         *string            `json:"logo_url,omitempty"`
	Specialties     []string           `json:"specialties"`
	Status          enums.SellerStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ShowroomDTO is the public showroom branding payload.
type ShowroomDTO struct {
	ID             uuid.UUID `json:"id"`
	SellerID       uuid.UUID `json:"seller_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	PrimaryColor   *string   `json:"primary_color,omitempty"`
	SecondaryColor *string   `json:"secondary_color,omitempty"`
	LogoURL        *string   `json:"logo_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSellerDTO maps the persisted seller to its API shape.
func NewSellerDTO(seller *models.Seller) SellerDTO {
	return SellerDTO{
		ID:              seller.ID,
		UserID:          seller.UserID,
		BusinessName:    seller.BusinessName,
		BusinessAddress: seller.BusinessAddress,
		Phone:           seller.Phone,
		Website:         seller.Website,
		LogoURL:         seller.LogoURL,
		Specialties:     append([]string{}, seller.Specialties...),
		Status:          seller.Status,
		CreatedAt:       seller.CreatedAt,
		UpdatedAt:       seller.UpdatedAt,
	}
}

// NewShowroomDTO maps the persisted showroom to its API shape.
func NewShowroomDTO(showroom *models.Showroom) ShowroomDTO {
	return ShowroomDTO{
		ID:             showroom.ID,
		SellerID:       showroom.SellerID,
		Name:           showroom.Name,
		Slug:           showroom.Slug,
		PrimaryColor:   showroom.PrimaryColor,
		SecondaryColor: showroom.SecondaryColor,
		LogoURL:        showroom.LogoURL,
		CreatedAt:      showroom.CreatedAt,
		UpdatedAt:      showroom.UpdatedAt,
	}
}

// ProfileDTO pairs a seller with their showroom.
type ProfileDTO struct {
	Seller   SellerDTO   `json:"seller"`
	Showroom ShowroomDTO `json:"showroom"`
}

// UpdateProfileInput holds optional seller profile mutations.
type UpdateProfileInput struct {
	BusinessName    *string
	BusinessAddress *string
	Phone           *string
	Website         *string
	LogoURL         *string
	Specialties     *[]string
}

// UpdateShowroomInput holds optional showroom branding mutations.
type UpdateShowroomInput struct {
	Name           *string
	PrimaryColor   *string
	SecondaryColor *string
	LogoURL        *string
}

// ListParams filters and paginates the admin seller listing.
type ListParams struct {
	Status     *enums.SellerStatus
	Pagination pagination.Params
}

// SellerListResult is one page of sellers for the admin portal.
type SellerListResult struct {
	Sellers    []SellerDTO `json:"sellers"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
