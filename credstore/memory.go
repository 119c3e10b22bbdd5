package credstore

import (
	"context"
	"sync"

	goSession "github.com/MrEthical07/goSession"
)

// Memory is an in-process CredentialStore for tests and demos. Safe for
// concurrent use.
type Memory struct {
	mu   sync.RWMutex
	sess goSession.StoredSession
	ok   bool
}

var _ goSession.CredentialStore = (*Memory)(nil)

// NewMemory describes the newmemory operation and its observable behavior.
func NewMemory() *Memory {
	return &Memory{}
}

// Load describes the load operation and its observable behavior.
func (m *Memory) Load(ctx context.Context) (goSession.StoredSession, bool, error) {
	if err := ctx.Err(); err != nil {
		return goSession.StoredSession{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess, m.ok, nil
}

// Save describes the save operation and its observable behavior.
func (m *Memory) Save(ctx context.Context, sess goSession.StoredSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	m.ok = true
	return nil
}

// Clear describes the clear operation and its observable behavior.
func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = goSession.StoredSession{}
	m.ok = false
	return nil
}
