package goSession

// Event is the sealed set of user intents the dispatcher accepts. The
// concrete types are [Started], [LoginRequested], [RegisterRequested],
// [LogoutRequested], and [OnboardingCompleted]; nothing outside this package
// can add a variant, so the transition engine's switch is exhaustive.
type Event interface {
	isEvent()
	// Kind returns the stable event name used in logs and metrics.
	Kind() string
}

// Started requests the startup resolution: load any persisted session,
// validate it, and land in Authenticated, OnboardingRequired, or
// Unauthenticated. It may be dispatched again later to re-resolve.
type Started struct{}

// LoginRequested carries the credentials entered on the login screen.
type LoginRequested struct {
	Email    string
	Password string
}

// RegisterRequested carries the fields entered on the registration screen.
type RegisterRequested struct {
	Email    string
	Password string
	FullName string
}

// LogoutRequested terminates the local session. It is honored from any
// state, including while an operation is in flight; the queued logout is
// applied after the in-flight effect settles, so the final state is always
// Unauthenticated.
type LogoutRequested struct{}

// OnboardingCompleted marks onboarding as done. It is a no-op unless the
// current state is OnboardingRequired.
type OnboardingCompleted struct{}

func (Started) isEvent()             {}
func (LoginRequested) isEvent()      {}
func (RegisterRequested) isEvent()   {}
func (LogoutRequested) isEvent()     {}
func (OnboardingCompleted) isEvent() {}

// Kind describes the kind operation and its observable behavior.
func (Started) Kind() string { return "started" }

// Kind describes the kind operation and its observable behavior.
func (LoginRequested) Kind() string { return "login_requested" }

// Kind describes the kind operation and its observable behavior.
func (RegisterRequested) Kind() string { return "register_requested" }

// Kind describes the kind operation and its observable behavior.
func (LogoutRequested) Kind() string { return "logout_requested" }

// Kind describes the kind operation and its observable behavior.
func (OnboardingCompleted) Kind() string { return "onboarding_completed" }

// Credentials is the transient value object constructed at the dispatch
// boundary. It is never persisted in plaintext and is discarded after the
// triggering operation completes.
type Credentials struct {
	Email    string
	Password string
}

// String redacts the password so a Credentials value can never leak through
// logging or error formatting.
func (c Credentials) String() string {
	return "credentials{email: " + c.Email + ", password: [redacted]}"
}
