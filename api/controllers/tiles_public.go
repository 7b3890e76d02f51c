package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/qr"
	"github.com/tilevista/tilevista-backend/internal/tiles"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// PublicTiles lists a showroom's catalog with cursor pagination.
func PublicTiles(svc tiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		showroomID, err := pathUUID(r, chi.URLParam(r, "showroomID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := tiles.ListParams{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseTileCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category"))
				return
			}
			params.Category = &category
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("in_stock")); raw != "" {
			inStock := raw == "true"
			params.InStock = &inStock
		}

		result, err := svc.ListPublic(r.Context(), showroomID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// TileDetail returns a single tile and records a view event.
func TileDetail(svc tiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tileID, err := pathUUID(r, chi.URLParam(r, "tileID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tile, err := svc.GetDetail(r.Context(), tileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tile)
	}
}

type scanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// ScanQR resolves a scanned QR payload to its tile.
func ScanQR(svc tiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body scanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scan, err := qr.ParseTilePayload(body.Payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tile, err := svc.ResolveScan(r.Context(), scan.ShowroomID, scan.TileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tile)
	}
}
