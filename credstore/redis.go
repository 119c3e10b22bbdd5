package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	goSession "github.com/MrEthical07/goSession"
)

// ErrCorruptSession is returned by Load when the stored blob cannot be
// decoded. The record is deleted before the error is returned, so a
// subsequent Load reports absence.
var ErrCorruptSession = errors.New("corrupt session record")

const defaultTTL = 30 * 24 * time.Hour

// RedisConfig defines a public type used by goSession APIs.
//
// RedisConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RedisConfig struct {
	// Prefix namespaces the session key, e.g. one prefix per app install.
	Prefix string
	// TTL bounds how long an untouched record survives. Defaults to 30 days.
	TTL time.Duration
}

// Redis is a CredentialStore backed by a single Redis key holding a JSON
// record. Safe for concurrent use.
type Redis struct {
	client redis.UniversalClient
	cfg    RedisConfig
}

var _ goSession.CredentialStore = (*Redis)(nil)

// NewRedis describes the newredis operation and its observable behavior.
//
// NewRedis may return an error when input validation, dependency calls, or security checks fail.
func NewRedis(client redis.UniversalClient, cfg RedisConfig) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "gosession"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &Redis{client: client, cfg: cfg}, nil
}

func (r *Redis) key() string {
	return r.cfg.Prefix + ":session"
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Load(ctx context.Context) (goSession.StoredSession, bool, error) {
	raw, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return goSession.StoredSession{}, false, nil
	}
	if err != nil {
		return goSession.StoredSession{}, false, fmt.Errorf("%w: %w", goSession.ErrStorageFailure, err)
	}

	var sess goSession.StoredSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		// Best-effort removal so the corrupt blob is not re-read forever.
		_ = r.client.Del(ctx, r.key()).Err()
		return goSession.StoredSession{}, false, fmt.Errorf("%w: %w", ErrCorruptSession, err)
	}
	return sess, true, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Redis) Save(ctx context.Context, sess goSession.StoredSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %w", goSession.ErrStorageFailure, err)
	}
	if err := r.client.Set(ctx, r.key(), raw, r.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("%w: %w", goSession.ErrStorageFailure, err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear is idempotent: clearing an absent record is not an error.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("%w: %w", goSession.ErrStorageFailure, err)
	}
	return nil
}
