package middleware

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultReplayTTL = 24 * time.Hour

// MemoryReplays is a ReplayStore living in process memory.
// Restarts forget every key, so it suits a single instance or tests.
type MemoryReplays struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryReplay
}

type memoryReplay struct {
	Replay
	expires time.Time
}

// NewMemoryReplays keeps keys for ttl, or a day when ttl is not positive.
func NewMemoryReplays(ttl time.Duration) *MemoryReplays {
	if ttl <= 0 {
		ttl = defaultReplayTTL
	}

	return &MemoryReplays{ttl: ttl, entries: make(map[string]memoryReplay)}
}

// Reserve implements ReplayStore.
// Expired keys are swept on every call.
func (m *MemoryReplays) Reserve(_ context.Context, key string, rp Replay) (Replay, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, k)
		}
	}

	if e, ok := m.entries[key]; ok {
		return e.Replay, false, nil
	}

	m.entries[key] = memoryReplay{rp, now.Add(m.ttl)}
	return rp, true, nil
}

// Save implements ReplayStore.
func (m *MemoryReplays) Save(_ context.Context, key string, rp Replay) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryReplay{rp, time.Now().Add(m.ttl)}
	return nil
}

// Release implements ReplayStore.
func (m *MemoryReplays) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// RedisReplays is a ReplayStore shared by every instance connected to one Redis.
type RedisReplays struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisReplays connects to Redis with opts and keeps keys for a day.
func NewRedisReplays(opts *redis.Options) RedisReplays {
	return RedisReplays{client: redis.NewClient(opts), prefix: "switchback:replay:", ttl: defaultReplayTTL}
}

// Reserve implements ReplayStore with SETNX so concurrent instances agree on the winner.
func (rr RedisReplays) Reserve(ctx context.Context, key string, rp Replay) (Replay, bool, error) {
	b, err := json.Marshal(rp)
	if err != nil {
		return Replay{}, false, err
	}

	ok, err := rr.client.SetNX(ctx, rr.prefix+key, b, rr.ttl).Result()
	if err != nil {
		return Replay{}, false, err
	}

	if ok {
		return rp, true, nil
	}

	raw, err := rr.client.Get(ctx, rr.prefix+key).Bytes()
	if err != nil {
		return Replay{}, false, err
	}

	var prior Replay
	if err := json.Unmarshal(raw, &prior); err != nil {
		return Replay{}, false, err
	}

	return prior, false, nil
}

// Save implements ReplayStore.
func (rr RedisReplays) Save(ctx context.Context, key string, rp Replay) error {
	b, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	return rr.client.Set(ctx, rr.prefix+key, b, rr.ttl).Err()
}

// Release implements ReplayStore.
func (rr RedisReplays) Release(ctx context.Context, key string) error {
	return rr.client.Del(ctx, rr.prefix+key).Err()
}

var (
	_ ReplayStore = new(MemoryReplays)
	_ ReplayStore = RedisReplays{}
)
