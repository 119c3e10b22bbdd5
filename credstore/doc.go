// Package credstore provides CredentialStore implementations for the session
// dispatcher: a Redis-backed store for deployments that share session state
// across processes, and an in-memory store for tests and demos. Records are
// stored as a single JSON blob under one key; a corrupt blob is deleted and
// reported as ErrCorruptSession so the core treats it as absent.
package credstore
