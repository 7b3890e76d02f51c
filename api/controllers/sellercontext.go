package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/api/middleware"
	"github.com/tilevista/tilevista-backend/internal/sellers"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// sellerIdentity resolves the seller profile behind the authenticated user.
// Seller routes run behind Auth + RequireRole(seller), so a missing profile
// here means the account is half-provisioned.
func sellerIdentity(r *http.Request, svc sellers.Service) (*sellers.ProfileDTO, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return svc.GetProfile(r.Context(), userID)
}

func pathUUID(r *http.Request, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier")
	}
	return id, nil
}
