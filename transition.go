package goSession

// transition is the pure decision function: (current state, event) to
// (next state, requested effects). No I/O, no clock, no randomness — every
// branch is reachable from a table test. Unmatched (state, event) pairs are
// ignored (stale UI actions racing a state change, not failures): the state
// is returned unchanged with no effects, and the dispatcher publishes
// nothing for them.
func transition(cur SessionState, ev Event, cfg ValidationConfig) (SessionState, []effect) {
	switch ev := ev.(type) {
	case Started:
		return LoadingState(), []effect{effectRestoreSession{}}

	case LoginRequested:
		if err := validateLogin(ev.Email, ev.Password, cfg); err != nil {
			return ErrorState(errorMessage(err)), nil
		}
		return LoadingState(), []effect{effectAuthenticate{
			creds: Credentials{Email: ev.Email, Password: ev.Password},
		}}

	case RegisterRequested:
		if err := validateRegistration(ev.Email, ev.Password, ev.FullName, cfg); err != nil {
			return ErrorState(errorMessage(err)), nil
		}
		return LoadingState(), []effect{effectRegister{
			creds:    Credentials{Email: ev.Email, Password: ev.Password},
			fullName: ev.FullName,
		}}

	case LogoutRequested:
		return LoadingState(), []effect{effectLogout{}}

	case OnboardingCompleted:
		if cur.Phase != PhaseOnboardingRequired {
			return cur, nil
		}
		// No Loading hop: the marker write is local and the identity is
		// already verified.
		return cur, []effect{effectCompleteOnboarding{identity: cur.Identity}}
	}

	return cur, nil
}
