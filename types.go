package goSession

import (
	"context"
	"time"
)

// AuthResult is returned by [IdentityProvider.Authenticate] and
// [IdentityProvider.Refresh]: the verified identity plus the token pair the
// remote authority issued for it.
type AuthResult struct {
	Identity     UserIdentity
	AccessToken  string
	RefreshToken string
}

// RegisterResult is returned by [IdentityProvider.Register].
// OnboardingRequired reports whether the new account must complete
// onboarding before the session is considered fully established.
type RegisterResult struct {
	AuthResult
	OnboardingRequired bool
}

// IdentityProvider is the remote authority the dispatcher calls to verify,
// create, refresh, and revoke identities. Implementations must honor ctx
// cancellation; the dispatcher bounds every call with the configured effect
// timeout. Errors should wrap a taxonomy sentinel where the cause is known;
// anything else is classified as unknown.
//
//	Docs: idp/httpidp for the REST implementation.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, email, password, fullName string) (RegisterResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
	Revoke(ctx context.Context, accessToken string) error
}

// StoredSession is the durable record a [CredentialStore] keeps between
// launches. OnboardingDone is the persisted completion marker; a restored
// record with OnboardingDone false resolves to OnboardingRequired.
type StoredSession struct {
	Identity       UserIdentity `json:"identity"`
	AccessToken    string       `json:"access_token,omitempty"`
	RefreshToken   string       `json:"refresh_token,omitempty"`
	OnboardingDone bool         `json:"onboarding_done"`
	SavedAt        time.Time    `json:"saved_at"`
}

// CredentialStore is durable, opaque storage for the session record.
// Load reports absence via its second return value rather than an error.
// Implementations must be safe for concurrent use.
type CredentialStore interface {
	Load(ctx context.Context) (StoredSession, bool, error)
	Save(ctx context.Context, sess StoredSession) error
	Clear(ctx context.Context) error
}
