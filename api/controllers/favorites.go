package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/access"
	"github.com/tilevista/tilevista-backend/internal/favorites"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

type toggleFavoriteRequest struct {
	TileID string `json:"tile_id" validate:"required,uuid"`
}

// FavoriteToggle flips membership of a tile in the caller's favorites.
// Guests are rejected with NOT_AUTHENTICATED by the service.
func FavoriteToggle(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body toggleFavoriteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tileID, err := uuid.Parse(body.TileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid tile_id"))
			return
		}

		result, err := svc.Toggle(r.Context(), access.PrincipalFromContext(r.Context()), tileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// FavoritesList returns the caller's favorited tiles with cursor pagination.
func FavoritesList(svc favorites.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		page, err := svc.List(r.Context(), access.PrincipalFromContext(r.Context()), cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
