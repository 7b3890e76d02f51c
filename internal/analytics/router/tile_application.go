package router

import (
	"context"
	"errors"
	"fmt"

	analyticspayloads "github.com/tilevista/tilevista-backend/internal/analytics/payloads"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/internal/analytics/writer"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

type tileApplicationHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newTileApplicationHandler(w Writer, logg *logger.Logger) Handler {
	return &tileApplicationHandler{writer: w, logg: logg}
}

func (h *tileApplicationHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*analyticspayloads.TileApplicationEvent)
	if !ok {
		return errors.New("tile_application: unexpected payload type")
	}
	if err := validateTileIdentity(event.TileID, event.ShowroomID); err != nil {
		return fmt.Errorf("tile_application: %w", err)
	}
	surface, err := enums.ParseSurface(event.Surface)
	if err != nil {
		return fmt.Errorf("tile_application: %w", err)
	}
	roomType, err := enums.ParseRoomType(event.RoomType)
	if err != nil {
		return fmt.Errorf("tile_application: %w", err)
	}

	encoded, err := writer.EncodeJSON(envelope.Payload)
	if err != nil {
		return fmt.Errorf("tile_application: encode payload: %w", err)
	}

	row := types.TileEventRow{
		EventID:    envelope.EventID,
		EventType:  envelope.EventType.String(),
		OccurredAt: envelope.OccurredAt,
		TileID:     event.TileID,
		ShowroomID: event.ShowroomID,
		Surface:    stringPtr(surface.String()),
		RoomType:   stringPtr(roomType.String()),
		Payload:    encoded,
	}
	applyActor(&row, envelope)

	return h.writer.InsertTileEvent(ctx, row)
}
