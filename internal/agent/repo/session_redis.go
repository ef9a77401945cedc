package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// RedisSessionStore keeps each session as one JSON value with a sliding TTL.
type RedisSessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
	now func() time.Time
}

func NewRedisSessionStore(rdb redis.Cmdable, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func (r *RedisSessionStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func (r *RedisSessionStore) GetOrCreate(ctx context.Context, sessionID string) (*model.SessionState, error) {
	key := r.sessionKey(sessionID)

	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewSessionState(sessionID), nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	state, err := decodeSession(b)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to unmarshal session")
		return nil, errx.Internal(fmt.Errorf("unmarshal session %s: %w", sessionID, err))
	}
	state.SessionID = sessionID
	return state, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, sessionID string, state *model.SessionState) error {
	state.SessionID = sessionID
	state.UpdatedAt = r.now().UTC()

	b, err := json.Marshal(state)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to marshal session")
		return errx.Internal(fmt.Errorf("marshal session: %w", err))
	}

	key := r.sessionKey(sessionID)
	// SET with expiration refreshes the TTL on every write
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func decodeSession(b []byte) (*model.SessionState, error) {
	var state model.SessionState
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, err
	}
	if state.InterestedProducts == nil {
		state.InterestedProducts = []string{}
	}
	return &state, nil
}

var _ model.SessionStore = (*RedisSessionStore)(nil)
