package goSession

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/goSession/token"
)

// Dispatcher serializes incoming events, applies the transition engine,
// executes requested effects against the injected collaborators, and
// publishes each resulting SessionState to subscribers. Exactly one event is
// processed at a time regardless of how many goroutines call Dispatch; state
// publications are strictly FIFO. Construct a Dispatcher through
// [Builder.Build].
type Dispatcher struct {
	cfg      Config
	provider IdentityProvider
	store    CredentialStore
	tokens   *token.Manager
	log      zerolog.Logger
	audit    *auditDispatcher
	metrics  *Metrics

	ch        chan queuedEvent
	done      chan struct{}
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeMu   sync.RWMutex
	closeOnce sync.Once

	stateMu sync.RWMutex
	state   SessionState

	subMu   sync.Mutex
	subs    []subscriber
	nextSub uint64
}

type queuedEvent struct {
	event Event
	done  chan struct{}
}

type subscriber struct {
	id uint64
	cb func(SessionState)
}

// Handle resolves when the event that produced it has been fully processed,
// including effect execution and the final state publication.
type Handle struct {
	done chan struct{}
	err  error // set before done is closed, then immutable
}

// Done returns a channel closed once processing completes. For an event
// dispatched after Close, the channel is closed immediately.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until processing completes or ctx is done. It returns
// ErrDispatcherClosed when the dispatcher was closed before the event could
// be enqueued.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newDispatcher(cfg Config, provider IdentityProvider, store CredentialStore, tokens *token.Manager, log zerolog.Logger, sink AuditSink) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		provider: provider,
		store:    store,
		tokens:   tokens,
		log:      log,
		audit:    newAuditDispatcher(cfg.Audit, sink),
		metrics:  newMetrics(cfg.Metrics),
		ch:       make(chan queuedEvent, cfg.Queue.BufferSize),
		done:     make(chan struct{}),
		state:    InitialState(),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Dispatch enqueues an event and returns immediately with a Handle. It never
// fails for a well-formed event; malformed input is rejected by the
// transition engine, which produces an Error state instead. A nil event or a
// closed dispatcher yields an already-resolved Handle.
func (d *Dispatcher) Dispatch(ev Event) *Handle {
	h := &Handle{done: make(chan struct{})}
	if d == nil || ev == nil {
		close(h.done)
		return h
	}

	// The read lock holds Close open until the send lands, so an enqueued
	// event is always seen by the worker's drain loop.
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()
	if d.closed.Load() {
		h.err = ErrDispatcherClosed
		close(h.done)
		return h
	}

	d.ch <- queuedEvent{event: ev, done: h.done}
	return h
}

// Subscribe registers cb to receive every published SessionState, starting
// with the current value (replay-on-subscribe; no events are replayed, only
// state). The replay invocation runs synchronously on the caller's
// goroutine; subsequent publications run on the dispatcher's worker
// goroutine. The callback must not call Subscribe or the returned
// unsubscribe function from within itself. Unsubscribe is idempotent.
func (d *Dispatcher) Subscribe(cb func(SessionState)) func() {
	if d == nil || cb == nil {
		return func() {}
	}

	d.subMu.Lock()
	d.nextSub++
	id := d.nextSub
	d.subs = append(d.subs, subscriber{id: id, cb: cb})
	cur := d.CurrentState()
	cb(cur)
	d.subMu.Unlock()

	return func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// CurrentState returns the latest published SessionState.
func (d *Dispatcher) CurrentState() SessionState {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state
}

// MetricsSnapshot returns a point-in-time copy of the dispatcher's counters.
func (d *Dispatcher) MetricsSnapshot() MetricsSnapshot {
	if d == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return d.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// audit buffer was full.
func (d *Dispatcher) AuditDropped() uint64 {
	if d == nil {
		return 0
	}
	return d.audit.Dropped()
}

// Close stops accepting new events, drains the queue (each drained event is
// still fully processed, so a queued logout lands in Unauthenticated), and
// shuts down the audit worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closeMu.Lock()
		d.closed.Store(true)
		close(d.done)
		d.closeMu.Unlock()
		d.wg.Wait()
		d.audit.Close()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case q := <-d.ch:
			d.process(q)
		case <-d.done:
			for {
				select {
				case q := <-d.ch:
					d.process(q)
				default:
					return
				}
			}
		}
	}
}

// process applies one event end to end: transition, immediate publication,
// effect execution, final publication. The deferred close makes the Handle
// resolve only after the final state is visible to subscribers.
func (d *Dispatcher) process(q queuedEvent) {
	defer close(q.done)

	d.metrics.Inc(MetricEventsDispatched)

	cur := d.CurrentState()
	next, effects := transition(cur, q.event, d.cfg.Validation)

	if next == cur && len(effects) == 0 {
		// Unmatched (state, event) pair: ignored, nothing published.
		d.metrics.Inc(MetricEventsIgnored)
		d.log.Debug().
			Str("event", q.event.Kind()).
			Stringer("phase", cur.Phase).
			Msg("event ignored")
		return
	}

	if next != cur {
		if next.Phase == PhaseError && len(effects) == 0 {
			d.metrics.Inc(MetricValidationRejected)
		}
		d.publish(next)
	}

	for _, eff := range effects {
		d.publish(d.execute(eff))
	}
}

func (d *Dispatcher) publish(s SessionState) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	d.stateMu.Lock()
	d.state = s
	d.stateMu.Unlock()

	for _, sub := range d.subs {
		sub.cb(s)
	}
}

func (d *Dispatcher) effectContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.cfg.Effects.Timeout)
}

func (d *Dispatcher) emitAudit(kind string, id UserIdentity, success bool, err error) {
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		UserID:    id.UserID,
		Email:     id.Email,
		Success:   success,
	}
	if err != nil {
		event.Error = err.Error()
	}
	d.audit.Emit(context.Background(), event)
}
