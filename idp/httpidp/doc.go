// Package httpidp implements the IdentityProvider contract against the
// backend's REST authentication API (/api/v1/auth). Requests are JSON, calls
// are bounded by the caller's context plus a client-level timeout, and HTTP
// failures are mapped into the goSession error taxonomy before they leave
// this package: 401/400 become ErrAuthenticationRejected, transport errors
// and 5xx become ErrNetworkFailure, everything else ErrUnknown.
package httpidp
