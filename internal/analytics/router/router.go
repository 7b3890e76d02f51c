package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	analyticspayloads "github.com/tilevista/tilevista-backend/internal/analytics/payloads"
	"github.com/tilevista/tilevista-backend/internal/analytics/types"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

var ErrUnsupportedEventType = errors.New("unsupported analytics event type")

// Writer delivers BigQuery rows produced by analytics handlers.
type Writer interface {
	InsertTileEvent(ctx context.Context, row types.TileEventRow) error
}

// Handler receives an envelope plus a decoded event payload.
type Handler interface {
	Handle(ctx context.Context, envelope types.Envelope, payload any) error
}

type handlerEntry struct {
	factory func() any
	handler Handler
}

// Router dispatches analytics envelopes to the configured handler per event type.
type Router struct {
	handlers map[enums.AnalyticsEventType]handlerEntry
	logg     *logger.Logger
}

// NewRouter wires the default handlers and allows overrides for specific events.
func NewRouter(writer Writer, logg *logger.Logger, overrides map[enums.AnalyticsEventType]Handler) (*Router, error) {
	if writer == nil {
		return nil, errors.New("writer is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}

	entries := map[enums.AnalyticsEventType]handlerEntry{
		enums.AnalyticsEventTileView: {
			factory: func() any { return &analyticspayloads.TileViewEvent{} },
			handler: newTileViewHandler(writer, logg),
		},
		enums.AnalyticsEventTileApplication: {
			factory: func() any { return &analyticspayloads.TileApplicationEvent{} },
			handler: newTileApplicationHandler(writer, logg),
		},
	}

	for event, custom := range overrides {
		entry, ok := entries[event]
		if !ok || custom == nil {
			continue
		}
		entry.handler = custom
		entries[event] = entry
	}

	return &Router{
		handlers: entries,
		logg:     logg,
	}, nil
}

// Handle dispatches the incoming envelope to the configured handler.
func (r *Router) Handle(ctx context.Context, envelope types.Envelope) error {
	entry, ok := r.handlers[envelope.EventType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEventType, envelope.EventType)
	}
	payload := entry.factory()
	if len(envelope.Payload) == 0 {
		return fmt.Errorf("empty payload for %s", envelope.EventType)
	}
	if err := json.Unmarshal(envelope.Payload, payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}

	return entry.handler.Handle(ctx, envelope, payload)
}
