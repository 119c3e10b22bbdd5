package goSession

import (
	"testing"
)

func testValidation() ValidationConfig {
	return DefaultConfig().Validation
}

func TestTransitionStartedFromAnyState(t *testing.T) {
	id := UserIdentity{UserID: "u1", Email: "a@b.com", FullName: "A B"}
	states := []SessionState{
		InitialState(),
		UnauthenticatedState(),
		OnboardingRequiredState(id),
		AuthenticatedState(id),
		ErrorState("boom"),
	}

	for _, cur := range states {
		next, effects := transition(cur, Started{}, testValidation())
		if next.Phase != PhaseLoading {
			t.Fatalf("Started from %s: expected loading, got %s", cur.Phase, next.Phase)
		}
		if len(effects) != 1 {
			t.Fatalf("Started from %s: expected one effect, got %d", cur.Phase, len(effects))
		}
		if _, ok := effects[0].(effectRestoreSession); !ok {
			t.Fatalf("Started from %s: expected restore effect, got %T", cur.Phase, effects[0])
		}
	}
}

func TestTransitionLoginValid(t *testing.T) {
	next, effects := transition(UnauthenticatedState(), LoginRequested{Email: "a@b.com", Password: "secret1"}, testValidation())
	if next.Phase != PhaseLoading {
		t.Fatalf("expected loading, got %s", next.Phase)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	eff, ok := effects[0].(effectAuthenticate)
	if !ok {
		t.Fatalf("expected authenticate effect, got %T", effects[0])
	}
	if eff.creds.Email != "a@b.com" || eff.creds.Password != "secret1" {
		t.Fatal("credentials not carried into effect")
	}
}

func TestTransitionLoginInvalidEmailIsLocalError(t *testing.T) {
	next, effects := transition(UnauthenticatedState(), LoginRequested{Email: "bad", Password: "x"}, testValidation())
	if next.Phase != PhaseError {
		t.Fatalf("expected error, got %s", next.Phase)
	}
	if next.Message != "invalid email" {
		t.Fatalf("expected message %q, got %q", "invalid email", next.Message)
	}
	if len(effects) != 0 {
		t.Fatalf("local validation failure must not request effects, got %d", len(effects))
	}
}

func TestTransitionLoginEmptyPassword(t *testing.T) {
	next, effects := transition(UnauthenticatedState(), LoginRequested{Email: "a@b.com", Password: ""}, testValidation())
	if next.Phase != PhaseError {
		t.Fatalf("expected error, got %s", next.Phase)
	}
	if len(effects) != 0 {
		t.Fatal("expected no effects")
	}
}

func TestTransitionRegisterValid(t *testing.T) {
	next, effects := transition(UnauthenticatedState(), RegisterRequested{Email: "a@b.com", Password: "longenough1", FullName: "A B"}, testValidation())
	if next.Phase != PhaseLoading {
		t.Fatalf("expected loading, got %s", next.Phase)
	}
	eff, ok := effects[0].(effectRegister)
	if !ok {
		t.Fatalf("expected register effect, got %T", effects[0])
	}
	if eff.fullName != "A B" {
		t.Fatalf("expected full name carried, got %q", eff.fullName)
	}
}

func TestTransitionRegisterRejectsShortPassword(t *testing.T) {
	next, effects := transition(UnauthenticatedState(), RegisterRequested{Email: "a@b.com", Password: "short1", FullName: "A B"}, testValidation())
	if next.Phase != PhaseError {
		t.Fatalf("expected error, got %s", next.Phase)
	}
	if next.Message != "password too short" {
		t.Fatalf("unexpected message %q", next.Message)
	}
	if len(effects) != 0 {
		t.Fatal("expected no effects")
	}
}

func TestTransitionRegisterRejectsEmptyFullName(t *testing.T) {
	next, _ := transition(UnauthenticatedState(), RegisterRequested{Email: "a@b.com", Password: "longenough1", FullName: "  "}, testValidation())
	if next.Phase != PhaseError || next.Message != "full name required" {
		t.Fatalf("expected full-name error, got %s %q", next.Phase, next.Message)
	}
}

func TestTransitionLogoutFromAnyState(t *testing.T) {
	states := []SessionState{
		InitialState(),
		LoadingState(),
		UnauthenticatedState(),
		AuthenticatedState(UserIdentity{UserID: "u1"}),
		ErrorState("boom"),
	}
	for _, cur := range states {
		next, effects := transition(cur, LogoutRequested{}, testValidation())
		if next.Phase != PhaseLoading {
			t.Fatalf("logout from %s: expected loading, got %s", cur.Phase, next.Phase)
		}
		if len(effects) != 1 {
			t.Fatalf("logout from %s: expected one effect", cur.Phase)
		}
		if _, ok := effects[0].(effectLogout); !ok {
			t.Fatalf("logout from %s: expected logout effect, got %T", cur.Phase, effects[0])
		}
	}
}

func TestTransitionOnboardingCompletedOnlyFromOnboardingRequired(t *testing.T) {
	id := UserIdentity{UserID: "u1", Email: "a@b.com", FullName: "A B"}

	next, effects := transition(OnboardingRequiredState(id), OnboardingCompleted{}, testValidation())
	if next.Phase != PhaseOnboardingRequired {
		t.Fatalf("expected state unchanged until effect resolves, got %s", next.Phase)
	}
	eff, ok := effects[0].(effectCompleteOnboarding)
	if !ok {
		t.Fatalf("expected onboarding effect, got %T", effects[0])
	}
	if eff.identity != id {
		t.Fatal("identity not carried into effect")
	}

	for _, cur := range []SessionState{
		InitialState(),
		LoadingState(),
		UnauthenticatedState(),
		AuthenticatedState(id),
		ErrorState("boom"),
	} {
		next, effects := transition(cur, OnboardingCompleted{}, testValidation())
		if next != cur || len(effects) != 0 {
			t.Fatalf("OnboardingCompleted from %s must be a no-op", cur.Phase)
		}
	}
}

func TestTransitionIsPure(t *testing.T) {
	cur := AuthenticatedState(UserIdentity{UserID: "u1", Email: "a@b.com", FullName: "A B"})
	ev := LoginRequested{Email: "a@b.com", Password: "secret1"}

	a1, e1 := transition(cur, ev, testValidation())
	a2, e2 := transition(cur, ev, testValidation())
	if a1 != a2 || len(e1) != len(e2) {
		t.Fatal("transition must be deterministic")
	}
	if cur.Phase != PhaseAuthenticated {
		t.Fatal("transition must not mutate its input")
	}
}
