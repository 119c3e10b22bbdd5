package goSession

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goSession/token"
)

// execute runs one effect against the collaborators and returns the state
// the effect resolves to. This is the only suspension point in the
// lifecycle: the transition engine itself never blocks.
func (d *Dispatcher) execute(eff effect) SessionState {
	ctx, cancel := d.effectContext()
	defer cancel()

	switch eff := eff.(type) {
	case effectRestoreSession:
		return d.restoreSession(ctx)
	case effectAuthenticate:
		return d.authenticate(ctx, eff.creds)
	case effectRegister:
		return d.register(ctx, eff.creds, eff.fullName)
	case effectLogout:
		return d.logout(ctx)
	case effectCompleteOnboarding:
		return d.completeOnboarding(ctx, eff.identity)
	}

	d.log.Error().Msg("unhandled effect type")
	return ErrorState("")
}

// restoreSession resolves Started. Startup never lands in Error: an
// unreadable, absent, invalid, or unrefreshable record resolves to
// Unauthenticated and the user logs in again.
func (d *Dispatcher) restoreSession(ctx context.Context) SessionState {
	sess, ok, err := d.store.Load(ctx)
	if err != nil {
		d.log.Warn().Err(err).Msg("persisted session unreadable, starting unauthenticated")
		d.metrics.Inc(MetricRestoreMiss)
		return UnauthenticatedState()
	}
	if !ok {
		d.metrics.Inc(MetricRestoreMiss)
		return UnauthenticatedState()
	}
	if sess.Identity.UserID == "" {
		// A record without an identity cannot back an authenticated state,
		// token manager or not.
		d.log.Warn().Msg("persisted session missing identity, starting unauthenticated")
		d.clearQuiet()
		d.metrics.Inc(MetricRestoreMiss)
		return UnauthenticatedState()
	}

	if d.tokens != nil {
		_, perr := d.tokens.Parse(sess.AccessToken)
		switch {
		case perr == nil:
			// Access token still valid.
		case errors.Is(perr, token.ErrExpired) && sess.RefreshToken != "":
			refreshed, rerr := d.refreshStored(ctx, sess)
			if rerr != nil {
				d.log.Info().Err(Classify(rerr)).Msg("session refresh failed, starting unauthenticated")
				d.clearQuiet()
				d.metrics.Inc(MetricRestoreMiss)
				d.emitAudit(AuditRestore, sess.Identity, false, Classify(rerr))
				return UnauthenticatedState()
			}
			sess = refreshed
			d.metrics.Inc(MetricSessionRefreshed)
		default:
			d.log.Info().Err(perr).Msg("persisted token invalid, starting unauthenticated")
			d.clearQuiet()
			d.metrics.Inc(MetricRestoreMiss)
			return UnauthenticatedState()
		}
	}

	d.metrics.Inc(MetricSessionRestored)
	d.emitAudit(AuditRestore, sess.Identity, true, nil)
	if !sess.OnboardingDone {
		return OnboardingRequiredState(sess.Identity)
	}
	return AuthenticatedState(sess.Identity)
}

// clearQuiet removes a record that can no longer be trusted. Best-effort
// with a fresh deadline; failure is logged only.
func (d *Dispatcher) clearQuiet() {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Effects.Timeout)
	defer cancel()
	if err := d.store.Clear(ctx); err != nil {
		d.log.Warn().Err(asStorageFailure(err)).Msg("credential clear failed")
	}
}

// refreshStored exchanges the stored refresh token for a new pair and
// persists the rotated record before it is trusted.
func (d *Dispatcher) refreshStored(ctx context.Context, sess StoredSession) (StoredSession, error) {
	res, err := d.provider.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return StoredSession{}, err
	}
	sess.Identity = res.Identity
	sess.AccessToken = res.AccessToken
	sess.RefreshToken = res.RefreshToken
	sess.SavedAt = time.Now().UTC()
	if err := d.store.Save(ctx, sess); err != nil {
		return StoredSession{}, asStorageFailure(err)
	}
	return sess, nil
}

func (d *Dispatcher) authenticate(ctx context.Context, creds Credentials) SessionState {
	res, err := d.provider.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return d.failOperation(AuditLogin, MetricLoginFailure, UserIdentity{Email: creds.Email}, err)
	}

	sess := StoredSession{
		Identity:       res.Identity,
		AccessToken:    res.AccessToken,
		RefreshToken:   res.RefreshToken,
		OnboardingDone: true,
		SavedAt:        time.Now().UTC(),
	}
	// The session is not trusted unless persisted: a successful
	// authenticate followed by a failed save is an error, not a login.
	if err := d.store.Save(ctx, sess); err != nil {
		return d.failOperation(AuditLogin, MetricLoginFailure, res.Identity, asStorageFailure(err))
	}

	d.metrics.Inc(MetricLoginSuccess)
	d.emitAudit(AuditLogin, res.Identity, true, nil)
	return AuthenticatedState(res.Identity)
}

func (d *Dispatcher) register(ctx context.Context, creds Credentials, fullName string) SessionState {
	res, err := d.provider.Register(ctx, creds.Email, creds.Password, fullName)
	if err != nil {
		return d.failOperation(AuditRegister, MetricRegisterFailure, UserIdentity{Email: creds.Email, FullName: fullName}, err)
	}

	sess := StoredSession{
		Identity:       res.Identity,
		AccessToken:    res.AccessToken,
		RefreshToken:   res.RefreshToken,
		OnboardingDone: !res.OnboardingRequired,
		SavedAt:        time.Now().UTC(),
	}
	if err := d.store.Save(ctx, sess); err != nil {
		return d.failOperation(AuditRegister, MetricRegisterFailure, res.Identity, asStorageFailure(err))
	}

	d.metrics.Inc(MetricRegisterSuccess)
	d.emitAudit(AuditRegister, res.Identity, true, nil)
	if res.OnboardingRequired {
		return OnboardingRequiredState(res.Identity)
	}
	return AuthenticatedState(res.Identity)
}

// logout always resolves to Unauthenticated. Remote revocation is
// best-effort; its failure is logged and audited but never blocks local
// session termination.
func (d *Dispatcher) logout(ctx context.Context) SessionState {
	identity := UserIdentity{}
	if sess, ok, err := d.store.Load(ctx); err == nil && ok {
		identity = sess.Identity
		if sess.AccessToken != "" {
			if rerr := d.provider.Revoke(ctx, sess.AccessToken); rerr != nil {
				d.metrics.Inc(MetricRevokeFailure)
				d.log.Warn().Err(Classify(rerr)).Msg("token revocation failed, completing local logout")
				d.emitAudit(AuditRevoke, identity, false, Classify(rerr))
			}
		}
	}

	// Local teardown gets its own deadline: a revoke that burned the
	// effect budget must not leave the record behind.
	clearCtx, cancel := context.WithTimeout(context.Background(), d.cfg.Effects.Timeout)
	defer cancel()
	if cerr := d.store.Clear(clearCtx); cerr != nil {
		d.log.Warn().Err(asStorageFailure(cerr)).Msg("credential clear failed during logout")
	}

	d.metrics.Inc(MetricLogoutCompleted)
	d.emitAudit(AuditLogout, identity, true, nil)
	return UnauthenticatedState()
}

// completeOnboarding persists the completion marker. The marker is part of
// the durable record, so a failed write is a storage error rather than a
// silent downgrade on next launch.
func (d *Dispatcher) completeOnboarding(ctx context.Context, identity UserIdentity) SessionState {
	sess, ok, err := d.store.Load(ctx)
	if err != nil {
		return d.failOperation(AuditOnboarding, MetricOnboardingFailure, identity, asStorageFailure(err))
	}
	if !ok {
		sess = StoredSession{Identity: identity}
	}
	sess.OnboardingDone = true
	sess.SavedAt = time.Now().UTC()
	if err := d.store.Save(ctx, sess); err != nil {
		return d.failOperation(AuditOnboarding, MetricOnboardingFailure, identity, asStorageFailure(err))
	}

	d.metrics.Inc(MetricOnboardingCompleted)
	d.emitAudit(AuditOnboarding, identity, true, nil)
	return AuthenticatedState(identity)
}

// failOperation classifies err, records it, and folds it into an Error
// state. The raw error never reaches subscribers.
func (d *Dispatcher) failOperation(kind string, metric MetricID, identity UserIdentity, err error) SessionState {
	cerr := Classify(err)
	if errors.Is(err, context.DeadlineExceeded) {
		d.metrics.Inc(MetricEffectTimeout)
	}
	d.metrics.Inc(metric)
	d.log.Warn().Str("op", kind).Err(cerr).Msg("effect failed")
	d.emitAudit(kind, identity, false, cerr)
	return ErrorState(errorMessage(cerr))
}
