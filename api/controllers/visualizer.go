package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/api/responses"
	"github.com/tilevista/tilevista-backend/api/validators"
	"github.com/tilevista/tilevista-backend/internal/visualizer"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

const visualizerSessionHeader = "X-Visualizer-Session"

// visualizerSession returns the caller's session id, minting one when the
// header is absent. The id is always echoed back so clients can persist it.
func visualizerSession(w http.ResponseWriter, r *http.Request) string {
	sessionID := strings.TrimSpace(r.Header.Get(visualizerSessionHeader))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(visualizerSessionHeader, sessionID)
	return sessionID
}

// VisualizerState returns the current session state.
func VisualizerState(svc visualizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := visualizerSession(w, r)

		state, err := svc.GetState(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

type selectRoomRequest struct {
	RoomType string `json:"room_type" validate:"required"`
}

// VisualizerSelectRoom switches the session's room template.
func VisualizerSelectRoom(svc visualizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := visualizerSession(w, r)

		var body selectRoomRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roomType, err := enums.ParseRoomType(strings.TrimSpace(body.RoomType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid room_type"))
			return
		}

		state, err := svc.SelectRoom(r.Context(), sessionID, roomType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

type applyTileRequest struct {
	TileID  string `json:"tile_id" validate:"required,uuid"`
	Surface string `json:"surface" validate:"required"`
}

// VisualizerApply applies a tile to a surface of the session's room.
func VisualizerApply(svc visualizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := visualizerSession(w, r)

		var body applyTileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tileID, err := uuid.Parse(body.TileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid tile_id"))
			return
		}

		surface, err := enums.ParseSurface(strings.TrimSpace(body.Surface))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid surface"))
			return
		}

		state, err := svc.ApplyTile(r.Context(), sessionID, tileID, surface)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}
