package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/api/middleware"
	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

// SellerProfile returns the authenticated seller's profile and showroom.
func SellerProfile(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := sellerIdentity(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type updateSellerProfileRequest struct {
	BusinessName    *string   `json:"business_name"`
	BusinessAddress *string   `json:"business_address"`
	Phone           *string   `json:"phone"`
	Website         *string   `json:"website"`
	LogoURL         *string   `json:"logo_url"`
	Specialties     *[]string `json:"specialties"`
}

// SellerProfileUpdate mutates the seller's business profile.
func SellerProfileUpdate(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateSellerProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		seller, err := svc.UpdateProfile(r.Context(), userID, sellers.UpdateProfileInput{
			BusinessName:    body.BusinessName,
			BusinessAddress: body.BusinessAddress,
			Phone:           body.Phone,
			Website:         body.Website,
			LogoURL:         body.LogoURL,
			Specialties:     body.Specialties,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, seller)
	}
}

type updateShowroomRequest struct {
	Name           *string `json:"name"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	LogoURL        *string `json:"logo_url"`
}

// SellerShowroomUpdate mutates the seller's showroom branding.
func SellerShowroomUpdate(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateShowroomRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		showroom, err := svc.UpdateShowroom(r.Context(), userID, sellers.UpdateShowroomInput{
			Name:           body.Name,
			PrimaryColor:   body.PrimaryColor,
			SecondaryColor: body.SecondaryColor,
			LogoURL:        body.LogoURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, showroom)
	}
}

func authenticatedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}
