package router

import (
	"context"
	"errors"
	"fmt"

	analyticspayloads "github.com/tilevista/tilevista-backend/internal/analytics/payloads"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/internal/analytics/writer"
	"github.com/tilevista/tilevista-backend/pkg/logger"
	"github.com/google/uuid"
)

type tileViewHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newTileViewHandler(w Writer, logg *logger.Logger) Handler {
	return &tileViewHandler{writer: w, logg: logg}
}

func (h *tileViewHandler) Handle(ctx context.Context, envelope types.Envelope, payload any) error {
	event, ok := payload.(*analyticspayloads.TileViewEvent)
	if !ok {
		return errors.New("tile_view: unexpected payload type")
	}
	if err := validateTileIdentity(event.TileID, event.ShowroomID); err != nil {
		return fmt.Errorf("tile_view: %w", err)
	}

	encoded, err := writer.EncodeJSON(envelope.Payload)
	if err != nil {
		return fmt.Errorf("tile_view: encode payload: %w", err)
	}

	row := types.TileEventRow{
		EventID:    envelope.EventID,
		EventType:  envelope.EventType.String(),
		OccurredAt: envelope.OccurredAt,
		TileID:     event.TileID,
		ShowroomID: event.ShowroomID,
		Payload:    encoded,
	}
	applyActor(&row, envelope)

	return h.writer.InsertTileEvent(ctx, row)
}

func applyActor(row *types.TileEventRow, envelope types.Envelope) {
	if envelope.Actor == nil {
		return
	}
	if envelope.Actor.UserID != nil {
		row.ActorUserID = stringPtr(envelope.Actor.UserID.String())
	}
	row.ActorRole = stringPtr(envelope.Actor.Role)
}

func validateTileIdentity(tileID, showroomID string) error {
	if _, err := uuid.Parse(tileID); err != nil {
		return fmt.Errorf("invalid tile id: %w", err)
	}
	if _, err := uuid.Parse(showroomID); err != nil {
		return fmt.Errorf("invalid showroom id: %w", err)
	}
	return nil
}
