package goSession

import (
	"errors"
	"time"
)

// Config defines a public type used by goSession APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Effects    EffectsConfig
	Queue      QueueConfig
	Validation ValidationConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
EFFECTS CONFIG
====================================
*/

// EffectsConfig bounds side-effect execution. Timeout applies per effect;
// an effect that exceeds it resolves as a network-class failure, it is never
// silently dropped.
type EffectsConfig struct {
	Timeout time.Duration
}

/*
====================================
QUEUE CONFIG
====================================
*/

// QueueConfig sizes the dispatcher's event queue. Dispatch blocks once the
// buffer is full; events are never reordered or discarded while the
// dispatcher is open.
type QueueConfig struct {
	BufferSize int
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// ValidationConfig sets the local credential-validation floors. Login only
// requires a non-empty password (the provider is the authority on existing
// accounts); registration enforces the backend's minimum length.
type ValidationConfig struct {
	LoginPasswordMinLength    int
	RegisterPasswordMinLength int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goSession APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goSession APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the configuration used when the builder is given
// none: 10s effect timeout, 64-slot queue, registration password floor of 8
// (matching the backend policy), audit and metrics enabled.
func DefaultConfig() Config {
	return Config{
		Effects: EffectsConfig{
			Timeout: 10 * time.Second,
		},
		Queue: QueueConfig{
			BufferSize: 64,
		},
		Validation: ValidationConfig{
			LoginPasswordMinLength:    1,
			RegisterPasswordMinLength: 8,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.Effects.Timeout <= 0 {
		return errors.New("effects timeout must be positive")
	}
	if cfg.Queue.BufferSize <= 0 {
		return errors.New("queue buffer size must be positive")
	}
	if cfg.Validation.LoginPasswordMinLength < 1 {
		return errors.New("login password minimum length must be at least 1")
	}
	if cfg.Validation.RegisterPasswordMinLength < cfg.Validation.LoginPasswordMinLength {
		return errors.New("register password minimum length must not be below the login minimum")
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive when audit is enabled")
	}
	return nil
}
