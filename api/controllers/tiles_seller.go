package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/internal/tiles"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

const maxImportBytes = 2 << 20

type createTileRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=120"`
	Category   string  `json:"category" validate:"required"`
	Size       string  `json:"size" validate:"required,max=32"`
	Price      string  `json:"price" validate:"required"`
	InStock    *bool   `json:"in_stock"`
	ImageURL   *string `json:"image_url"`
	TextureURL *string `json:"texture_url"`
}

func (req createTileRequest) toInput() (tiles.CreateTileInput, error) {
	category, err := enums.ParseTileCategory(strings.TrimSpace(req.Category))
	if err != nil {
		return tiles.CreateTileInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return tiles.CreateTileInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid price")
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	return tiles.CreateTileInput{
		Name:       strings.TrimSpace(req.Name),
		Category:   category,
		Size:       strings.TrimSpace(req.Size),
		Price:      price,
		InStock:    inStock,
		ImageURL:   req.ImageURL,
		TextureURL: req.TextureURL,
	}, nil
}

type updateTileRequest struct {
	Name       *string `json:"name"`
	Size       *string `json:"size"`
	Price      *string `json:"price"`
	InStock    *bool   `json:"in_stock"`
	ImageURL   *string `json:"image_url"`
	TextureURL *string `json:"texture_url"`
}

func (req updateTileRequest) toInput() (tiles.UpdateTileInput, error) {
	input := tiles.UpdateTileInput{
		Name:       req.Name,
		Size:       req.Size,
		InStock:    req.InStock,
		ImageURL:   req.ImageURL,
		TextureURL: req.TextureURL,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*req.Price))
		if err != nil {
			return tiles.UpdateTileInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid price")
		}
		input.Price = &price
	}
	return input, nil
}

// SellerTiles lists the authenticated seller's full inventory.
func SellerTiles(svc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListForSeller(r.Context(), profile.Seller.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"tiles": result})
	}
}

// SellerTileCreate adds a tile to the seller's catalog.
func SellerTileCreate(svc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createTileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tile, err := svc.Create(r.Context(), profile.Seller.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tile)
	}
}

// SellerTileUpdate mutates a tile the seller owns.
func SellerTileUpdate(svc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tileID, err := pathUUID(r, chi.URLParam(r, "tileID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateTileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tile, err := svc.Update(r.Context(), profile.Seller.ID, tileID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tile)
	}
}

// SellerTileDelete removes a tile the seller owns.
func SellerTileDelete(svc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tileID, err := pathUUID(r, chi.URLParam(r, "tileID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), profile.Seller.ID, tileID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SellerTileImport bulk-creates tiles from an uploaded CSV. Accepts either a
// multipart "file" field or a raw text/csv body.
func SellerTileImport(svc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reader := http.MaxBytesReader(w, r.Body, maxImportBytes)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(maxImportBytes); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid upload"))
				return
			}
			file, _, err := r.FormFile("file")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file field is required"))
				return
			}
			defer file.Close()
			reader = file
		}

		report, err := svc.ImportCSV(r.Context(), profile.Seller.ID, reader)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
