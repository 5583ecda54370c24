package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redispkg "github.com/inkwellpress/inkwell-backend/pkg/redis"
)

// SnapshotStore persists the full ordered line sequence for a session. A
// missing or unreadable snapshot is reported as an empty cart, never an error:
// cart state is not safety-critical and a corrupt slot is silently discarded.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Save(ctx context.Context, sessionID string, lines []Line) error
}

type snapshotKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartSnapshotKey(sessionID string) string
}

// RedisSnapshotStore keeps one snapshot slot per session in Redis.
type RedisSnapshotStore struct {
	kv  snapshotKV
	ttl time.Duration
}

// NewRedisSnapshotStore wires the snapshot slot onto the shared Redis client.
func NewRedisSnapshotStore(kv snapshotKV, ttl time.Duration) (*RedisSnapshotStore, error) {
	if kv == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisSnapshotStore{kv: kv, ttl: ttl}, nil
}

// Load reads the session's snapshot. Absent or malformed slots yield an empty
// cart; only transport failures surface as errors.
func (r *RedisSnapshotStore) Load(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := r.kv.Get(ctx, r.kv.CartSnapshotKey(sessionID))
	if err != nil {
		if errors.Is(err, redispkg.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	lines, err := decodeSnapshot([]byte(raw))
	if err != nil {
		// corrupt slot: discard, start empty
		return nil, nil
	}
	return lines, nil
}

// Save overwrites the session's slot with the full line sequence.
func (r *RedisSnapshotStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	payload, err := encodeSnapshot(lines)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := r.kv.Set(ctx, r.kv.CartSnapshotKey(sessionID), payload, r.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func encodeSnapshot(lines []Line) (string, error) {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func decodeSnapshot(payload []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, err
	}
	for _, line := range lines {
		if line.ItemID == "" || line.Quantity < 1 {
			return nil, fmt.Errorf("invalid snapshot line %q", line.ItemID)
		}
	}
	return lines, nil
}
