package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "booking_session:"

// SessionRepository keeps the wizard state of a browser session. Values are
// stored as JSON and expire after the configured TTL.
type SessionRepository interface {
	// Load decodes the session into out and reports whether it existed.
	Load(ctx context.Context, id string, out any) (bool, error)
	Save(ctx context.Context, id string, value any) error
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration, log *zap.Logger) SessionRepository {
	if client == nil {
		panic("repository: redis client cannot be nil")
	}
	return &redisSessionRepository{
		redis: client,
		ttl:   ttl,
		log:   log.With(zap.String("repository", "session"), zap.String("store", "redis")),
	}
}

func (r *redisSessionRepository) Load(ctx context.Context, id string, out any) (bool, error) {
	data, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.log.Error("Failed to load session", zap.Error(err), zap.String("session_id", id))
		return false, fmt.Errorf("load session %s: %w", id, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		r.log.Warn("Discarding undecodable session", zap.Error(err), zap.String("session_id", id))
		return false, nil
	}
	return true, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", id, err)
	}
	if err := r.redis.Set(ctx, sessionKey(id), data, r.ttl).Err(); err != nil {
		r.log.Error("Failed to save session", zap.Error(err), zap.String("session_id", id))
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.log.Error("Failed to delete session", zap.Error(err), zap.String("session_id", id))
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memorySweepInterval is the minimum time between two passes over the
// store dropping expired sessions.
const memorySweepInterval = time.Minute

type memorySessionRepository struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       *zap.Logger
}

// NewMemorySessionRepository is the single-instance store used when no Redis
// is configured.
func NewMemorySessionRepository(ttl time.Duration, log *zap.Logger) SessionRepository {
	return &memorySessionRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		log:     log.With(zap.String("repository", "session"), zap.String("store", "memory")),
	}
}

func (r *memorySessionRepository) Load(_ context.Context, id string, out any) (bool, error) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok && r.expired(entry) {
		delete(r.entries, id)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, out); err != nil {
		r.log.Warn("Discarding undecodable session", zap.Error(err), zap.String("session_id", id))
		return false, nil
	}
	return true, nil
}

func (r *memorySessionRepository) Save(_ context.Context, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.entries[id] = memoryEntry{data: data, expiresAt: now.Add(r.ttl)}
	if now.Sub(r.lastSweep) >= memorySweepInterval {
		r.sweep()
		r.lastSweep = now
	}
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
	return nil
}

func (r *memorySessionRepository) expired(entry memoryEntry) bool {
	return r.ttl > 0 && r.now().After(entry.expiresAt)
}

// sweep drops expired entries. Caller holds mu. Entries expired between
// sweeps are also dropped lazily by Load.
func (r *memorySessionRepository) sweep() {
	for id, entry := range r.entries {
		if r.expired(entry) {
			delete(r.entries, id)
		}
	}
}
