package tiles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// TileDTO is the tile payload returned to clients.
type TileDTO struct {
	ID         uuid.UUID          `json:"id"`
	ShowroomID uuid.UUID          `json:"showroom_id"`
	SellerID   uuid.UUID          `json:"seller_id"`
	Name       string             `json:"name"`
	Category   enums.TileCategory `json:"category"`
	Size       string             `json:"size"`
	Price      decimal.Decimal    `json:"price"`
	InStock    bool               `json:"in_stock"`
	ImageURL   *string            `json:"image_url,omitempty"`
	TextureURL *string            `json:"texture_url,omitempty"`
	QRImageURL *string            `json:"qr_image_url,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewTileDTO maps the persisted model to its API shape.
func NewTileDTO(tile *models.Tile) TileDTO {
	return TileDTO{
		ID:         tile.ID,
		ShowroomID: tile.ShowroomID,
		SellerID:   tile.SellerID,
		Name:       tile.Name,
		Category:   tile.Category,
		Size:       tile.Size,
		Price:      tile.Price,
		InStock:    tile.InStock,
		ImageURL:   tile.ImageURL,
		TextureURL: tile.TextureURL,
		QRImageURL: tile.QRImageURL,
		CreatedAt:  tile.CreatedAt,
		UpdatedAt:  tile.UpdatedAt,
	}
}

// ListParams filters and paginates the public catalog listing.
type ListParams struct {
	Category   *enums.TileCategory
	InStock    *bool
	Pagination pagination.Params
}

// TileListResult is one page of catalog tiles.
type TileListResult struct {
	Tiles      []TileDTO `json:"tiles"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CreateTileInput holds the validated payload to create a tile.
type CreateTileInput struct {
	Name       string
	Category   enums.TileCategory
	Size       string
	Price      decimal.Decimal
	InStock    bool
	ImageURL   *string
	TextureURL *string
}

// UpdateTileInput holds optional mutation values. Category is fixed at
// creation: changing it would silently invalidate existing visualizer
// sessions and printed QR codes.
type UpdateTileInput struct {
	Name       *string
	Size       *string
	Price      *decimal.Decimal
	InStock    *bool
	ImageURL   *string
	TextureURL *string
	QRImageURL *string
}

// ImportRowResult reports the outcome of a single CSV row.
type ImportRowResult struct {
	Line   int        `json:"line"`
	Name   string     `json:"name,omitempty"`
	TileID *uuid.UUID `json:"tile_id,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// ImportReport summarizes a CSV bulk import.
type ImportReport struct {
	Created int               `json:"created"`
	Failed  int               `json:"failed"`
	Rows    []ImportRowResult `json:"rows"`
}
