package recorder

import (
	"context"
	"encoding/json"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/internal/access"
	"github.com/tilevista/tilevista-backend/internal/analytics/payloads"
	"github.com/tilevista/tilevista-backend/internal/visualizer"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/eventing"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

const defaultPublishTimeout = 10 * time.Second

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type gcpPublisher struct {
	pub *gcppubsub.Publisher
}

func (p gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	return p.pub.Publish(ctx, msg)
}

// Recorder publishes analytics events to the analytics topic. Recording is
// fire-and-forget: failures are logged and never surfaced to the caller, so
// a flaky topic cannot break tile browsing or visualization.
type Recorder struct {
	pub     publisher
	logg    *logger.Logger
	timeout time.Duration
}

// NewRecorder builds a recorder on top of a Pub/Sub publisher handle.
func NewRecorder(pub *gcppubsub.Publisher, logg *logger.Logger) (*Recorder, error) {
	if pub == nil {
		return nil, errors.New(errors.CodeValidation, "analytics publisher is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeValidation, "logger is required")
	}
	return &Recorder{pub: gcpPublisher{pub: pub}, logg: logg, timeout: defaultPublishTimeout}, nil
}

// RecordView records that a tile detail was viewed.
func (r *Recorder) RecordView(ctx context.Context, tileID, showroomID uuid.UUID, source string) {
	payload := payloads.TileViewEvent{
		TileID:     tileID.String(),
		ShowroomID: showroomID.String(),
		Source:     source,
	}
	r.publish(ctx, enums.AnalyticsEventTileView, payload)
}

// RecordApplication records a successful tile application from the visualizer.
func (r *Recorder) RecordApplication(ctx context.Context, event visualizer.ApplicationEvent) {
	payload := payloads.TileApplicationEvent{
		TileID:     event.TileID.String(),
		ShowroomID: event.ShowroomID.String(),
		Surface:    event.Surface.String(),
		RoomType:   event.RoomType.String(),
	}
	r.publish(ctx, enums.AnalyticsEventTileApplication, payload)
}

func (r *Recorder) publish(ctx context.Context, eventType enums.AnalyticsEventType, payload any) {
	if ctx == nil {
		ctx = context.Background()
	}
	fields := map[string]any{"event_type": eventType.String()}
	logCtx := r.logg.WithFields(ctx, fields)

	data, err := json.Marshal(payload)
	if err != nil {
		r.logg.Error(logCtx, "marshal analytics payload", err)
		return
	}

	envelope := eventing.PayloadEnvelope{
		Version:    1,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Actor:      actorFromContext(ctx),
		Data:       data,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		r.logg.Error(logCtx, "marshal analytics envelope", err)
		return
	}

	fields["event_id"] = envelope.EventID
	logCtx = r.logg.WithFields(ctx, fields)

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	result := r.pub.Publish(publishCtx, &gcppubsub.Message{
		Data: body,
		Attributes: map[string]string{
			"event_type": eventType.String(),
			"event_id":   envelope.EventID,
		},
	})
	if _, err := result.Get(publishCtx); err != nil {
		r.logg.Error(logCtx, "publish analytics event", err)
		return
	}
	r.logg.Info(logCtx, "analytics event published")
}

func actorFromContext(ctx context.Context) *eventing.ActorRef {
	principal := access.PrincipalFromContext(ctx)
	if principal == nil {
		return nil
	}
	userID := principal.UserID
	return &eventing.ActorRef{UserID: &userID, Role: principal.Role.String()}
}
