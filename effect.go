package goSession

// effect is a declarative side-effect request produced by the transition
// engine and executed by the dispatcher. The engine never performs I/O
// itself; it only names what must happen next.
type effect interface {
	isEffect()
}

// effectRestoreSession loads the persisted session record and validates it.
type effectRestoreSession struct{}

// effectAuthenticate verifies credentials remotely and persists the issued
// session on success.
type effectAuthenticate struct {
	creds Credentials
}

// effectRegister creates an account remotely and persists the issued session
// on success.
type effectRegister struct {
	creds    Credentials
	fullName string
}

// effectLogout revokes the remote session best-effort and always clears the
// local record.
type effectLogout struct{}

// effectCompleteOnboarding persists the onboarding completion marker for the
// identity carried by the current state.
type effectCompleteOnboarding struct {
	identity UserIdentity
}

func (effectRestoreSession) isEffect()     {}
func (effectAuthenticate) isEffect()       {}
func (effectRegister) isEffect()           {}
func (effectLogout) isEffect()             {}
func (effectCompleteOnboarding) isEffect() {}
