package visualizer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tilevista/tilevista-backend/pkg/enums"
	pkgerrors "github.com/tilevista/tilevista-backend/pkg/errors"
	"github.com/tilevista/tilevista-backend/pkg/redis"
)

// Session is the per-client visualization state. It lives for the duration of
// a browsing session; the durable catalog and favorites stay with their own
// stores.
type Session struct {
	RoomType *enums.RoomType `json:"room_type,omitempty"`
	Applied  AppliedTiles    `json:"applied"`
}

// NewSession returns an empty session with no room selected.
func NewSession() Session {
	return Session{Applied: AppliedTiles{}}
}

// SelectRoom switches the session to a new room. Applied tiles reset on every
// room change so stale surface assignments never leak between layouts.
func (s *Session) SelectRoom(roomType enums.RoomType) {
	s.RoomType = &roomType
	s.Applied = AppliedTiles{}
}

// Store persists visualizer sessions between requests.
type Store interface {
	Load(ctx context.Context, sessionID string) (Session, error)
	Save(ctx context.Context, sessionID string, session Session) error
}

// RedisStore keeps sessions as JSON blobs in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultSessionTTL = 2 * time.Hour

// NewRedisStore builds a session store over the shared Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Load returns the stored session, or a fresh empty one when none exists.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (Session, error) {
	raw, err := s.client.Get(ctx, s.client.VisualizerSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return NewSession(), nil
		}
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load visualizer session")
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// A corrupt blob is unrecoverable; start over rather than erroring.
		return NewSession(), nil
	}
	if session.Applied == nil {
		session.Applied = AppliedTiles{}
	}
	return session, nil
}

// Save writes the session back and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode visualizer session")
	}
	if err := s.client.Set(ctx, s.client.VisualizerSessionKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save visualizer session")
	}
	return nil
}

// NewSessionID mints an opaque session identifier for first-time clients.
func NewSessionID() string {
	return uuid.NewString()
}
