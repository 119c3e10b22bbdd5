// Package token issues and validates the session access tokens persisted by
// the credential store. Tokens are standard JWTs carrying the user identity
// (uid, email, name) alongside registered claims; the Manager supports HS256
// and Ed25519 signing with configurable leeway.
package token
