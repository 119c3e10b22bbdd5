package goSession

// Phase defines a public type used by goSession APIs.
//
// Phase instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Phase uint8

const (
	// PhaseInitial is an exported constant or variable used by the session engine.
	PhaseInitial Phase = iota
	// PhaseLoading is an exported constant or variable used by the session engine.
	PhaseLoading
	// PhaseUnauthenticated is an exported constant or variable used by the session engine.
	PhaseUnauthenticated
	// PhaseOnboardingRequired is an exported constant or variable used by the session engine.
	PhaseOnboardingRequired
	// PhaseAuthenticated is an exported constant or variable used by the session engine.
	PhaseAuthenticated
	// PhaseError is an exported constant or variable used by the session engine.
	PhaseError
)

// String returns the lowercase phase name used in logs and audit records.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseLoading:
		return "loading"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseOnboardingRequired:
		return "onboarding_required"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// UserIdentity is the verified identity carried by the OnboardingRequired and
// Authenticated phases. UserID is a non-empty opaque identifier issued by the
// identity provider.
type UserIdentity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// SessionState is the single authoritative snapshot of the authentication
// lifecycle. It is a value: transitions replace it atomically, never mutate
// it in place. Identity is set only for PhaseOnboardingRequired and
// PhaseAuthenticated; Message is set only for PhaseError.
type SessionState struct {
	Phase    Phase
	Identity UserIdentity
	Message  string
}

// InitialState returns the state the dispatcher starts in before any
// lifecycle decision has been made.
func InitialState() SessionState {
	return SessionState{Phase: PhaseInitial}
}

// LoadingState returns the in-flight state. It carries no user data.
func LoadingState() SessionState {
	return SessionState{Phase: PhaseLoading}
}

// UnauthenticatedState returns the no-valid-session state.
func UnauthenticatedState() SessionState {
	return SessionState{Phase: PhaseUnauthenticated}
}

// OnboardingRequiredState returns the verified-but-not-onboarded state for id.
func OnboardingRequiredState(id UserIdentity) SessionState {
	return SessionState{Phase: PhaseOnboardingRequired, Identity: id}
}

// AuthenticatedState returns the valid-session state for id.
func AuthenticatedState(id UserIdentity) SessionState {
	return SessionState{Phase: PhaseAuthenticated, Identity: id}
}

// ErrorState returns the failed-operation state carrying a human-readable,
// non-empty message suitable for direct display.
func ErrorState(message string) SessionState {
	if message == "" {
		message = "something went wrong, please try again"
	}
	return SessionState{Phase: PhaseError, Message: message}
}
