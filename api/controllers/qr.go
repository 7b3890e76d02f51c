package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/internal/qr"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	"github.com/tilevista/tilevista-backend/internal/tiles"
	"github.com/tilevista/tilevista-backend/pkg/db/models"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

// TileQRCode renders the printable QR PNG for one of the seller's tiles.
func TileQRCode(generator *qr.Generator, tilesSvc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
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

		tile, err := tilesSvc.GetOwned(r.Context(), profile.Seller.ID, tileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		png, err := generator.GeneratePNG(tile.ID, tile.ShowroomID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "qr-"+tile.ID.String()+".png"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

// QRBundle streams a ZIP with QR PNGs and a CSV manifest for every tile in
// the seller's catalog.
func QRBundle(generator *qr.Generator, tilesSvc tiles.Service, sellersSvc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, sellersSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		catalog, err := tilesSvc.ListForSeller(r.Context(), profile.Seller.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(catalog) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no tiles to bundle"))
			return
		}

		entries := make([]qr.BundleEntry, 0, len(catalog))
		for _, tile := range catalog {
			png, err := generator.GeneratePNG(tile.ID, tile.ShowroomID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			entries = append(entries, qr.BundleEntry{
				Tile: models.Tile{
					ID:         tile.ID,
					ShowroomID: tile.ShowroomID,
					SellerID:   tile.SellerID,
					Name:       tile.Name,
					Category:   tile.Category,
					Size:       tile.Size,
				},
				PNG: png,
			})
		}

		bundle, err := qr.BuildBundle(profile.Showroom.Name, entries, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "qr-codes-"+profile.Showroom.Slug+".zip"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(bundle)
	}
}
