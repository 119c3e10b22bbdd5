// Package goSession implements an application-wide authentication/session
// lifecycle controller: a pure transition engine over a tagged session state,
// driven by a serializing event dispatcher that executes side effects against
// injected collaborators (an identity provider and a credential store).
//
// The package is designed for UI-facing clients: screens dispatch events
// ([Started], [LoginRequested], [RegisterRequested], [LogoutRequested],
// [OnboardingCompleted]) and subscribe to the stream of [SessionState]
// snapshots. All Dispatcher methods are safe to call from multiple goroutines
// after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Dispatcher], [Builder],
// [Config], the event and state types, and the collaborator contracts
// ([IdentityProvider], [CredentialStore]). Concrete adapters live in
// subpackages: credstore (Redis and in-memory credential stores), idp/httpidp
// (REST identity provider client), and token (session token manager).
//
// # What this package must NOT do
//
//   - Perform I/O outside of effect execution (the transition engine is pure;
//     construction via Builder is allocation-only until Build).
//   - Process two events concurrently. All events flow through a single
//     ordered queue; the published state stream is strictly FIFO.
//   - Log or persist plaintext credentials. [Credentials] values exist only
//     for the duration of the triggering operation and redact themselves
//     when formatted.
//
// # Failure contract
//
// Every collaborator failure is classified into the error taxonomy
// ([ErrInvalidCredentials], [ErrAuthenticationRejected], [ErrNetworkFailure],
// [ErrStorageFailure], [ErrUnknown]) before it is folded into an Error state;
// no raw transport error ever reaches a subscriber. Logout always completes
// locally even when remote revocation fails or times out.
package goSession
