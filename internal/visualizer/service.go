package visualizer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tilevista/tilevista-backend/internal/rooms"
	"github.com/tilevista/tilevista-backend/pkg/db/models"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
)

// SurfaceStateDTO describes one surface of the selected room.
type SurfaceStateDTO struct {
	Surface       enums.Surface `json:"surface"`
	Available     bool          `json:"available"`
	AppliedTileID *uuid.UUID    `json:"applied_tile_id,omitempty"`
}

// StateDTO is the session state returned to clients after every operation.
type StateDTO struct {
	RoomType *enums.RoomType   `json:"room_type,omitempty"`
	Surfaces []SurfaceStateDTO `json:"surfaces"`
}

type tileReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tile, error)
}

// ApplicationRecorder forwards application events to analytics. Implementations
// are fire-and-forget: they log their own failures and never return them here.
type ApplicationRecorder interface {
	RecordApplication(ctx context.Context, event ApplicationEvent)
}

// Service exposes the visualization session operations.
type Service interface {
	GetState(ctx context.Context, sessionID string) (StateDTO, error)
	SelectRoom(ctx context.Context, sessionID string, roomType enums.RoomType) (StateDTO, error)
	ApplyTile(ctx context.Context, sessionID string, tileID uuid.UUID, surface enums.Surface) (StateDTO, error)
}

// ServiceParams groups the service dependencies.
type ServiceParams struct {
	Store    Store
	Tiles    tileReader
	Recorder ApplicationRecorder
}

type service struct {
	store    Store
	tiles    tileReader
	recorder ApplicationRecorder
}

// NewService builds the visualizer service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session store is required")
	}
	if params.Tiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tile reader is required")
	}
	if params.Recorder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "application recorder is required")
	}
	return &service{store: params.Store, tiles: params.Tiles, recorder: params.Recorder}, nil
}

// GetState returns the current session state without mutating it.
func (s *service) GetState(ctx context.Context, sessionID string) (StateDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return StateDTO{}, err
	}
	return stateDTO(session)
}

// SelectRoom switches the room template and resets applied tiles.
func (s *service) SelectRoom(ctx context.Context, sessionID string, roomType enums.RoomType) (StateDTO, error) {
	if _, err := rooms.ByType(roomType); err != nil {
		return StateDTO{}, err
	}

	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return StateDTO{}, err
	}
	session.SelectRoom(roomType)

	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return StateDTO{}, err
	}
	return stateDTO(session)
}

// ApplyTile applies the tile to the surface of the session's room. Rejections
// leave the session untouched; success persists the new mapping and records
// the application event.
func (s *service) ApplyTile(ctx context.Context, sessionID string, tileID uuid.UUID, surface enums.Surface) (StateDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return StateDTO{}, err
	}

	var room *rooms.Room
	if session.RoomType != nil {
		loaded, err := rooms.ByType(*session.RoomType)
		if err != nil {
			return StateDTO{}, err
		}
		room = &loaded
	}

	tile, err := s.tiles.FindByID(ctx, tileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StateDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "tile not found")
		}
		return StateDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tile")
	}

	ref := TileRef{ID: tile.ID, ShowroomID: tile.ShowroomID, Category: tile.Category}
	next, event, err := Apply(ref, room, surface, session.Applied)
	if err != nil {
		return StateDTO{}, err
	}

	session.Applied = next
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return StateDTO{}, err
	}

	s.recorder.RecordApplication(ctx, event)

	return stateDTO(session)
}

func stateDTO(session Session) (StateDTO, error) {
	dto := StateDTO{RoomType: session.RoomType, Surfaces: []SurfaceStateDTO{}}
	if session.RoomType == nil {
		return dto, nil
	}

	room, err := rooms.ByType(*session.RoomType)
	if err != nil {
		return StateDTO{}, err
	}

	for _, surface := range room.Surfaces {
		state := SurfaceStateDTO{
			Surface:   surface,
			Available: SurfaceAvailable(surface, session.Applied, room),
		}
		if tileID, ok := session.Applied[surface]; ok {
			id := tileID
			state.AppliedTileID = &id
		}
		dto.Surfaces = append(dto.Surfaces, state)
	}
	return dto, nil
}
