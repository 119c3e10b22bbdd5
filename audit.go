package goSession

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AuditEvent records one completed lifecycle operation. Events never carry
// passwords or tokens.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// Audit event kinds emitted by the dispatcher.
const (
	AuditRestore    = "session.restore"
	AuditLogin      = "session.login"
	AuditRegister   = "session.register"
	AuditLogout     = "session.logout"
	AuditRevoke     = "session.revoke"
	AuditOnboarding = "session.onboarding"
)

// AuditSink receives lifecycle audit events. Emit is called from the audit
// dispatcher's worker goroutine; implementations must not block longer than
// ctx allows.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit describes the emit operation and its observable behavior.
func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a buffered channel for test and pipeline
// consumers.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink describes the newchannelsink operation and its observable behavior.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit describes the emit operation and its observable behavior.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events describes the events operation and its observable behavior.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit describes the emit operation and its observable behavior.
func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// ZerologSink emits audit events as structured log records: info for
// successes, warn for failures.
type ZerologSink struct {
	Logger zerolog.Logger
}

// Emit describes the emit operation and its observable behavior.
func (s ZerologSink) Emit(_ context.Context, event AuditEvent) {
	entry := s.Logger.Info()
	if !event.Success {
		entry = s.Logger.Warn()
	}
	entry.
		Str("kind", event.Kind).
		Str("user_id", event.UserID).
		Bool("success", event.Success).
		Str("error", event.Error).
		Time("at", event.Timestamp).
		Msg("session audit")
}
