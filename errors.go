package goSession

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the session engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthenticationRejected is an exported constant or variable used by the session engine.
	ErrAuthenticationRejected = errors.New("authentication rejected")
	// ErrNetworkFailure is an exported constant or variable used by the session engine.
	ErrNetworkFailure = errors.New("network failure")
	// ErrStorageFailure is an exported constant or variable used by the session engine.
	ErrStorageFailure = errors.New("storage failure")
	// ErrUnknown is an exported constant or variable used by the session engine.
	ErrUnknown = errors.New("unknown failure")

	// ErrDispatcherClosed is returned by Handle.Wait when the dispatcher was
	// closed before the event could be enqueued. Events enqueued before Close
	// are still drained and processed.
	ErrDispatcherClosed = errors.New("dispatcher closed")
	// ErrProviderRequired is an exported constant or variable used by the session engine.
	ErrProviderRequired = errors.New("identity provider is required")
	// ErrStoreRequired is an exported constant or variable used by the session engine.
	ErrStoreRequired = errors.New("credential store is required")
	// ErrBuilderReused is an exported constant or variable used by the session engine.
	ErrBuilderReused = errors.New("builder already built")
)

// validationError is a local validation failure produced synchronously by the
// transition engine. It never reaches a collaborator. It matches
// ErrInvalidCredentials under errors.Is while preserving the field-specific
// message for display.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalidCredentials }

// Classify maps an arbitrary collaborator error onto the taxonomy. Errors
// already tagged with a taxonomy sentinel pass through unchanged; context
// deadline and transport timeouts become ErrNetworkFailure; everything else
// becomes ErrUnknown. Classify(nil) is nil.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAuthenticationRejected),
		errors.Is(err, ErrNetworkFailure),
		errors.Is(err, ErrStorageFailure),
		errors.Is(err, ErrUnknown):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errors.Join(ErrNetworkFailure, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(ErrNetworkFailure, err)
	}
	return errors.Join(ErrUnknown, err)
}

// asStorageFailure tags a credential-store error. Timeouts stay in the
// network class per the taxonomy; anything else untagged becomes
// ErrStorageFailure.
func asStorageFailure(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errors.Join(ErrNetworkFailure, err)
	}
	if errors.Is(err, ErrStorageFailure) || errors.Is(err, ErrNetworkFailure) {
		return err
	}
	return errors.Join(ErrStorageFailure, err)
}

// errorMessage converts a classified error into the human-readable message
// carried by an Error state. Local validation errors surface their own
// field-specific message; remote failures map to fixed, display-safe strings.
func errorMessage(err error) string {
	var verr *validationError
	if errors.As(err, &verr) {
		return verr.msg
	}
	switch {
	case errors.Is(err, ErrAuthenticationRejected):
		return "invalid email or password"
	case errors.Is(err, ErrNetworkFailure):
		return "network error, please try again"
	case errors.Is(err, ErrStorageFailure):
		return "could not save your session, please try again"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid credentials"
	default:
		return "something went wrong, please try again"
	}
}
