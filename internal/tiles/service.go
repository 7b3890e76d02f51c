package tiles

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// View sources recorded with tile_view events.
const (
	ViewSourceCatalog = "catalog"
	ViewSourceQRScan  = "qr_scan"
)

type tileStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tile, error)
	FindInShowroom(ctx context.Context, showroomID, tileID uuid.UUID) (*models.Tile, error)
	Create(ctx context.Context, tile *models.Tile) (*models.Tile, error)
	Update(ctx context.Context, tile *models.Tile) (*models.Tile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByShowroom(ctx context.Context, showroomID uuid.UUID, params ListParams) (*TileListResult, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Tile, error)
}

type sellerReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
}

type showroomReader interface {
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) (*models.Showroom, error)
}

// viewRecorder forwards tile_view events to analytics, fire-and-forget.
type viewRecorder interface {
	RecordView(ctx context.Context, tileID, showroomID uuid.UUID, source string)
}

// Service exposes catalog operations for customers and sellers.
type Service interface {
	ListPublic(ctx context.Context, showroomID uuid.UUID, params ListParams) (*TileListResult, error)
	GetDetail(ctx context.Context, tileID uuid.UUID) (*TileDTO, error)
	ResolveScan(ctx context.Context, showroomID, tileID uuid.UUID) (*TileDTO, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]TileDTO, error)
	GetOwned(ctx context.Context, sellerID, tileID uuid.UUID) (*TileDTO, error)
	Create(ctx context.Context, sellerID uuid.UUID, input CreateTileInput) (*TileDTO, error)
	Update(ctx context.Context, sellerID, tileID uuid.UUID, input UpdateTileInput) (*TileDTO, error)
	Delete(ctx context.Context, sellerID, tileID uuid.UUID) error
	ImportCSV(ctx context.Context, sellerID uuid.UUID, r io.Reader) (*ImportReport, error)
}

// ServiceParams groups the service dependencies.
type ServiceParams struct {
	Tiles     tileStore
	Sellers   sellerReader
	Showrooms showroomReader
	Recorder  viewRecorder
}

type service struct {
	tiles     tileStore
	sellers   sellerReader
	showrooms showroomReader
	recorder  viewRecorder
}

// NewService constructs a tile catalog service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile repository is required")
	}
	if params.Sellers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller repository is required")
	}
	if params.Showrooms == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom repository is required")
	}
	if params.Recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "view recorder is required")
	}
	return &service{
		tiles:     params.Tiles,
		sellers:   params.Sellers,
		showrooms: params.Showrooms,
		recorder:  params.Recorder,
	}, nil
}

// ListPublic returns a catalog page for the showroom.
func (s *service) ListPublic(ctx context.Context, showroomID uuid.UUID, params ListParams) (*TileListResult, error) {
	if showroomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom id is required")
	}
	if params.Category != nil && !params.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tile category")
	}
	result, err := s.tiles.ListByShowroom(ctx, showroomID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tiles")
	}
	return result, nil
}

// GetDetail loads a tile for the customer detail page and records the view.
func (s *service) GetDetail(ctx context.Context, tileID uuid.UUID) (*TileDTO, error) {
	tile, err := s.loadTile(ctx, tileID)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordView(ctx, tile.ID, tile.ShowroomID, ViewSourceCatalog)
	dto := NewTileDTO(tile)
	return &dto, nil
}

// ResolveScan looks up a tile from a decoded QR payload. The tile must belong
// to the showroom named in the payload.
func (s *service) ResolveScan(ctx context.Context, showroomID, tileID uuid.UUID) (*TileDTO, error) {
	if showroomID == uuid.Nil || tileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "showroom id and tile id are required")
	}
	tile, err := s.tiles.FindInShowroom(ctx, showroomID, tileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tile not found in showroom")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load scanned tile")
	}
	s.recorder.RecordView(ctx, tile.ID, tile.ShowroomID, ViewSourceQRScan)
	dto := NewTileDTO(tile)
	return &dto, nil
}

// ListForSeller returns all tiles a seller owns.
func (s *service) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]TileDTO, error) {
	if _, _, err := s.ensureActiveSeller(ctx, sellerID); err != nil {
		return nil, err
	}
	rows, err := s.tiles.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller tiles")
	}
	dtos := make([]TileDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewTileDTO(&rows[i]))
	}
	return dtos, nil
}

// GetOwned loads a tile the seller owns without recording a view. Seller
// tooling (QR generation, edit forms) goes through here.
func (s *service) GetOwned(ctx context.Context, sellerID, tileID uuid.UUID) (*TileDTO, error) {
	tile, err := s.loadOwnedTile(ctx, sellerID, tileID)
	if err != nil {
		return nil, err
	}
	dto := NewTileDTO(tile)
	return &dto, nil
}

// Create inserts a tile into the seller's showroom.
func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input CreateTileInput) (*TileDTO, error) {
	_, showroom, err := s.ensureActiveSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	tile := &models.Tile{
		ShowroomID: showroom.ID,
		SellerID:   sellerID,
		Name:       strings.TrimSpace(input.Name),
		Category:   input.Category,
		Size:       strings.TrimSpace(input.Size),
		Price:      input.Price,
		InStock:    input.InStock,
		ImageURL:   input.ImageURL,
		TextureURL: input.TextureURL,
	}
	created, err := s.tiles.Create(ctx, tile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert tile")
	}
	dto := NewTileDTO(created)
	return &dto, nil
}

// Update mutates a tile the seller owns. The category never changes.
func (s *service) Update(ctx context.Context, sellerID, tileID uuid.UUID, input UpdateTileInput) (*TileDTO, error) {
	if _, _, err := s.ensureActiveSeller(ctx, sellerID); err != nil {
		return nil, err
	}
	tile, err := s.loadOwnedTile(ctx, sellerID, tileID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile name cannot be empty")
		}
		tile.Name = name
	}
	if input.Size != nil {
		size := strings.TrimSpace(*input.Size)
		if size == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile size cannot be empty")
		}
		tile.Size = size
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		tile.Price = *input.Price
	}
	if input.InStock != nil {
		tile.InStock = *input.InStock
	}
	if input.ImageURL != nil {
		tile.ImageURL = input.ImageURL
	}
	if input.TextureURL != nil {
		tile.TextureURL = input.TextureURL
	}
	if input.QRImageURL != nil {
		tile.QRImageURL = input.QRImageURL
	}

	updated, err := s.tiles.Update(ctx, tile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tile")
	}
	dto := NewTileDTO(updated)
	return &dto, nil
}

// Delete removes a tile the seller owns.
func (s *service) Delete(ctx context.Context, sellerID, tileID uuid.UUID) error {
	if _, _, err := s.ensureActiveSeller(ctx, sellerID); err != nil {
		return err
	}
	if _, err := s.loadOwnedTile(ctx, sellerID, tileID); err != nil {
		return err
	}
	if err := s.tiles.Delete(ctx, tileID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tile")
	}
	return nil
}

func (s *service) loadTile(ctx context.Context, tileID uuid.UUID) (*models.Tile, error) {
	if tileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile id is required")
	}
	tile, err := s.tiles.FindByID(ctx, tileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tile")
	}
	return tile, nil
}

func (s *service) loadOwnedTile(ctx context.Context, sellerID, tileID uuid.UUID) (*models.Tile, error) {
	tile, err := s.loadTile(ctx, tileID)
	if err != nil {
		return nil, err
	}
	if tile.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tile belongs to another seller")
	}
	return tile, nil
}

func (s *service) ensureActiveSeller(ctx context.Context, sellerID uuid.UUID) (*models.Seller, *models.Showroom, error) {
	if sellerID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required")
	}
	seller, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	if seller.Status != enums.SellerStatusActive {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller account is not active")
	}
	showroom, err := s.showrooms.FindBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "showroom not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load showroom")
	}
	return seller, showroom, nil
}

func validateCreateInput(input CreateTileInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "tile name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid tile category")
	}
	if strings.TrimSpace(input.Size) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "tile size is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}
