package goSession

import (
	"github.com/rs/zerolog"

	"github.com/MrEthical07/goSession/token"
)

// Builder defines a public type used by goSession APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	provider IdentityProvider
	store    CredentialStore
	tokens   *token.Manager

	logger    zerolog.Logger
	hasLogger bool
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithIdentityProvider injects the remote authority used for authenticate,
// register, refresh, and revoke. Required.
func (b *Builder) WithIdentityProvider(p IdentityProvider) *Builder {
	b.provider = p
	return b
}

// WithCredentialStore injects the durable session record storage. Required.
func (b *Builder) WithCredentialStore(s CredentialStore) *Builder {
	b.store = s
	return b
}

// WithTokenManager enables local validation of the persisted access token
// during startup restore, and refresh-on-expiry. Optional: without it the
// stored record is trusted as-is.
func (b *Builder) WithTokenManager(m *token.Manager) *Builder {
	b.tokens = m
	return b
}

// WithLogger injects the structured logger. Defaults to a no-op logger; the
// dispatcher never writes to a global logger.
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = l
	b.hasLogger = true
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration and collaborators and starts the
// dispatcher worker. A Builder can build at most once.
func (b *Builder) Build() (*Dispatcher, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}
	if b.provider == nil {
		return nil, ErrProviderRequired
	}
	if b.store == nil {
		return nil, ErrStoreRequired
	}

	logger := b.logger
	if !b.hasLogger {
		logger = zerolog.Nop()
	}

	b.built = true
	return newDispatcher(b.config, b.provider, b.store, b.tokens, logger, b.auditSink), nil
}
