package goSession

import (
	"context"
	"errors"
	"testing"
)

type timeoutNetError struct{}

func (timeoutNetError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutNetError) Timeout() bool   { return true }
func (timeoutNetError) Temporary() bool { return true }

func TestClassifyPassesTaxonomyThrough(t *testing.T) {
	for _, sentinel := range []error{
		ErrInvalidCredentials,
		ErrAuthenticationRejected,
		ErrNetworkFailure,
		ErrStorageFailure,
		ErrUnknown,
	} {
		wrapped := errors.Join(sentinel, errors.New("detail"))
		if got := Classify(wrapped); !errors.Is(got, sentinel) {
			t.Errorf("expected %v preserved, got %v", sentinel, got)
		}
	}
}

func TestClassifyDeadlineIsNetworkFailure(t *testing.T) {
	if got := Classify(context.DeadlineExceeded); !errors.Is(got, ErrNetworkFailure) {
		t.Fatalf("expected network failure, got %v", got)
	}
	if got := Classify(timeoutNetError{}); !errors.Is(got, ErrNetworkFailure) {
		t.Fatalf("expected net.Error classified as network failure, got %v", got)
	}
}

func TestClassifyUnmatchedIsUnknown(t *testing.T) {
	if got := Classify(errors.New("surprising")); !errors.Is(got, ErrUnknown) {
		t.Fatalf("expected unknown, got %v", got)
	}
	if Classify(nil) != nil {
		t.Fatal("Classify(nil) must be nil")
	}
}

func TestAsStorageFailure(t *testing.T) {
	if got := asStorageFailure(errors.New("disk full")); !errors.Is(got, ErrStorageFailure) {
		t.Fatalf("expected storage failure, got %v", got)
	}
	if got := asStorageFailure(context.DeadlineExceeded); !errors.Is(got, ErrNetworkFailure) {
		t.Fatalf("storage timeout stays in the network class, got %v", got)
	}
	if asStorageFailure(nil) != nil {
		t.Fatal("asStorageFailure(nil) must be nil")
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&validationError{msg: "invalid email"}, "invalid email"},
		{errors.Join(ErrAuthenticationRejected, errors.New("401")), "invalid email or password"},
		{errors.Join(ErrNetworkFailure, errors.New("timeout")), "network error, please try again"},
		{errors.Join(ErrStorageFailure, errors.New("disk")), "could not save your session, please try again"},
		{errors.Join(ErrUnknown, errors.New("boom")), "something went wrong, please try again"},
	}
	for _, tc := range cases {
		if got := errorMessage(tc.err); got != tc.want {
			t.Errorf("errorMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
