package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/tilevista/tilevista-backend/pkg/pagination"
)

// AdminSellers lists sellers for the admin portal with status filtering.
func AdminSellers(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := sellers.ListParams{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseSellerStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			params.Status = &status
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminSellerSuspend blocks a seller from catalog mutations.
func AdminSellerSuspend(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return adminSellerStatus(logg, svc.Suspend)
}

// AdminSellerReactivate restores a suspended seller.
func AdminSellerReactivate(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return adminSellerStatus(logg, svc.Reactivate)
}

func adminSellerStatus(logg *logger.Logger, op func(ctx context.Context, sellerID uuid.UUID) (*sellers.SellerDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := pathUUID(r, chi.URLParam(r, "sellerID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := op(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}
