package sellers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

type sellerStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error)
	Update(ctx context.Context, seller *models.Seller) (*models.Seller, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.SellerStatus) error
	List(ctx context.Context, params ListParams) (*SellerListResult, error)
}

type showroomStore interface {
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Showroom, error)
	FindBySlug(ctx context.Context, slug string) (*models.Showroom, error)
	Update(ctx context.Context, showroom *models.Showroom) (*models.Showroom, error)
}

// ServiceParams groups dependencies for the sellers service.
type ServiceParams struct {
	Sellers   sellerStore
	Showrooms showroomStore
}

// Service exposes seller profile and admin moderation operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*SellerDTO, error)
	UpdateShowroom(ctx context.Context, userID uuid.UUID, input UpdateShowroomInput) (*ShowroomDTO, error)
	GetShowroomBySlug(ctx context.Context, slug string) (*ShowroomDTO, error)
	List(ctx context.Context, params ListParams) (*SellerListResult, error)
	Suspend(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error)
	Reactivate(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error)
}

type service struct {
	sellers   sellerStore
	showrooms showroomStore
}

// NewService builds a sellers service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sellers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller repo is required")
	}
	if params.Showrooms == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom repo is required")
	}
	return &service{sellers: params.Sellers, showrooms: params.Showrooms}, nil
}

// GetProfile loads the seller profile and showroom for the signed-in seller.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	seller, err := s.loadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	showroom, err := s.showrooms.FindBySellerID(ctx, seller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load showroom")
	}
	return &ProfileDTO{Seller: NewSellerDTO(seller), Showroom: NewShowroomDTO(showroom)}, nil
}

// UpdateProfile applies partial updates to the seller profile.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*SellerDTO, error) {
	seller, err := s.loadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		name := strings.TrimSpace(*input.BusinessName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name cannot be empty")
		}
		seller.BusinessName = name
	}
	if input.BusinessAddress != nil {
		seller.BusinessAddress = input.BusinessAddress
	}
	if input.Phone != nil {
		seller.Phone = input.Phone
	}
	if input.Website != nil {
		seller.Website = input.Website
	}
	if input.LogoURL != nil {
		seller.LogoURL = input.LogoURL
	}
	if input.Specialties != nil {
		seller.Specialties = pq.StringArray(append([]string{}, (*input.Specialties)...))
	}

	updated, err := s.sellers.Update(ctx, seller)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller")
	}
	dto := NewSellerDTO(updated)
	return &dto, nil
}

// UpdateShowroom applies partial branding updates to the seller's showroom.
func (s *service) UpdateShowroom(ctx context.Context, userID uuid.UUID, input UpdateShowroomInput) (*ShowroomDTO, error) {
	seller, err := s.loadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	showroom, err := s.showrooms.FindBySellerID(ctx, seller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load showroom")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom name cannot be empty")
		}
		showroom.Name = name
	}
	if input.PrimaryColor != nil {
		showroom.PrimaryColor = input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		showroom.SecondaryColor = input.SecondaryColor
	}
	if input.LogoURL != nil {
		showroom.LogoURL = input.LogoURL
	}

	updated, err := s.showrooms.Update(ctx, showroom)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update showroom")
	}
	dto := NewShowroomDTO(updated)
	return &dto, nil
}

// GetShowroomBySlug resolves public showroom branding for the customer portal.
func (s *service) GetShowroomBySlug(ctx context.Context, slug string) (*ShowroomDTO, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	showroom, err := s.showrooms.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load showroom")
	}
	dto := NewShowroomDTO(showroom)
	return &dto, nil
}

// List returns one admin page of sellers.
func (s *service) List(ctx context.Context, params ListParams) (*SellerListResult, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid seller status")
	}
	result, err := s.sellers.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sellers")
	}
	return result, nil
}

// Suspend blocks the seller from catalog mutations. Suspending twice is a no-op.
func (s *service) Suspend(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error) {
	return s.setStatus(ctx, sellerID, enums.SellerStatusSuspended)
}

// Reactivate restores a suspended or inactive seller.
func (s *service) Reactivate(ctx context.Context, sellerID uuid.UUID) (*SellerDTO, error) {
	return s.setStatus(ctx, sellerID, enums.SellerStatusActive)
}

func (s *service) setStatus(ctx context.Context, sellerID uuid.UUID, status enums.SellerStatus) (*SellerDTO, error) {
	seller, err := s.loadByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller.Status != status {
		if err := s.sellers.SetStatus(ctx, sellerID, status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller status")
		}
		seller.Status = status
	}
	dto := NewSellerDTO(seller)
	return &dto, nil
}

func (s *service) loadByID(ctx context.Context, sellerID uuid.UUID) (*models.Seller, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	return seller, nil
}

func (s *service) loadByUser(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	return seller, nil
}
