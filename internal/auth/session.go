package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"abyos-admin/internal/user"
)

const (
	// CookieName carries the opaque session token.
	CookieName = "abyos_session"

	sessionKeyFmt = "session:%s"
)

// ErrNoSession is returned when a token resolves to nothing: absent, expired
// or explicitly destroyed.
var ErrNoSession = errors.New("no session")

// Store holds session snapshots keyed by an opaque token.
type Store interface {
	Create(ctx context.Context, snap user.Snapshot) (string, error)
	Get(ctx context.Context, token string) (user.Snapshot, error)
	Update(ctx context.Context, token string, snap user.Snapshot) error
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps sessions in redis with a sliding TTL: every read refreshes
// the expiry.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, snap user.Snapshot) (string, error) {
	token := uuid.NewString()
	if err := s.set(ctx, token, snap); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (user.Snapshot, error) {
	key := fmt.Sprintf(sessionKeyFmt, token)
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return user.Snapshot{}, ErrNoSession
	}
	if err != nil {
		return user.Snapshot{}, err
	}
	var snap user.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return user.Snapshot{}, err
	}
	_ = s.rdb.Expire(ctx, key, s.ttl).Err()
	return snap, nil
}

func (s *RedisStore) Update(ctx context.Context, token string, snap user.Snapshot) error {
	return s.set(ctx, token, snap)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(sessionKeyFmt, token)).Err()
}

func (s *RedisStore) set(ctx context.Context, token string, snap user.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf(sessionKeyFmt, token), raw, s.ttl).Err()
}

// MemoryStore is the redis-less fallback used in tests and single-node dev
// setups. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	snap      user.Snapshot
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(ctx context.Context, snap user.Snapshot) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{snap: snap, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (user.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return user.Snapshot{}, ErrNoSession
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return user.Snapshot{}, ErrNoSession
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	s.entries[token] = entry
	return entry.snap, nil
}

func (s *MemoryStore) Update(ctx context.Context, token string, snap user.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{snap: snap, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
