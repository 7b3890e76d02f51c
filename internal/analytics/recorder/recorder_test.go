package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/tilevista/tilevista-backend/internal/access"
	"github.com/tilevista/tilevista-backend/internal/analytics/payloads"
	"github.com/tilevista/tilevista-backend/internal/visualizer"
	"github.com/tilevista/tilevista-backend/pkg/enums"
	"github.com/tilevista/tilevista-backend/pkg/eventing"
	"github.com/tilevista/tilevista-backend/pkg/logger"
)

func TestRecordApplicationPublishesEnvelope(t *testing.T) {
	rec, pub := newTestRecorder(t)
	tileID := uuid.New()
	showroomID := uuid.New()

	rec.RecordApplication(context.Background(), visualizer.ApplicationEvent{
		TileID:     tileID,
		ShowroomID: showroomID,
		Surface:    enums.SurfaceWall,
		RoomType:   enums.RoomTypeKitchen,
	})

	if len(pub.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Attributes["event_type"] != "tile_application" {
		t.Fatalf("unexpected event_type attribute: %q", msg.Attributes["event_type"])
	}
	if msg.Attributes["event_id"] == "" {
		t.Fatal("event_id attribute missing")
	}

	var envelope eventing.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Version != 1 || envelope.EventID != msg.Attributes["event_id"] {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	if envelope.OccurredAt.IsZero() {
		t.Fatal("occurredAt not set")
	}
	if envelope.Actor != nil {
		t.Fatalf("anonymous publish must not carry an actor: %+v", envelope.Actor)
	}

	var payload payloads.TileApplicationEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.TileID != tileID.String() || payload.ShowroomID != showroomID.String() {
		t.Fatalf("unexpected identity: %+v", payload)
	}
	if payload.Surface != "wall" || payload.RoomType != "kitchen" {
		t.Fatalf("unexpected placement: %+v", payload)
	}
}

func TestRecordViewCarriesPrincipalActor(t *testing.T) {
	rec, pub := newTestRecorder(t)
	userID := uuid.New()
	ctx := access.WithPrincipal(context.Background(), &access.Principal{
		UserID: userID,
		Role:   enums.UserRoleCustomer,
	})

	rec.RecordView(ctx, uuid.New(), uuid.New(), "qr_scan")

	if len(pub.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(pub.messages))
	}
	var envelope eventing.PayloadEnvelope
	if err := json.Unmarshal(pub.messages[0].Data, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Actor == nil || envelope.Actor.UserID == nil || *envelope.Actor.UserID != userID {
		t.Fatalf("actor not carried: %+v", envelope.Actor)
	}
	if envelope.Actor.Role != "customer" {
		t.Fatalf("unexpected actor role: %q", envelope.Actor.Role)
	}

	var payload payloads.TileViewEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Source != "qr_scan" {
		t.Fatalf("unexpected source: %q", payload.Source)
	}
}

func TestRecordSwallowsPublishFailure(t *testing.T) {
	rec, pub := newTestRecorder(t)
	pub.err = errors.New("topic unavailable")

	rec.RecordView(context.Background(), uuid.New(), uuid.New(), "")

	if len(pub.messages) != 1 {
		t.Fatalf("expected publish attempt, got %d", len(pub.messages))
	}
}

func TestNewRecorderValidation(t *testing.T) {
	if _, err := NewRecorder(nil, logger.New(logger.Options{ServiceName: "recorder-test"})); err == nil {
		t.Fatal("expected error when publisher missing")
	}
	if _, err := NewRecorder(&gcppubsub.Publisher{}, nil); err == nil {
		t.Fatal("expected error when logger missing")
	}
}

func newTestRecorder(t *testing.T) (*Recorder, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	return &Recorder{
		pub:     pub,
		logg:    logger.New(logger.Options{ServiceName: "recorder-test"}),
		timeout: time.Second,
	}, pub
}

type fakePublisher struct {
	messages []*gcppubsub.Message
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	return fakeResult{err: f.err}
}

type fakeResult struct {
	err error
}

func (f fakeResult) Get(context.Context) (string, error) {
	return "server-id", f.err
}
