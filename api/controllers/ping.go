package controllers

import (
	"net/http"

	"github.com/tilevista/tilevista-backend/api/middleware"
	"github.com/tilevista/tilevista-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func SellerPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "seller", "status": "ok"}
		if showroom := middleware.ShowroomIDFromContext(r.Context()); showroom != "" {
			payload["showroom_id"] = showroom
		}
		responses.WriteSuccess(w, payload)
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "admin", "status": "ok"})
	}
}
