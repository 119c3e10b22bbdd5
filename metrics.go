package goSession

import (
	"sync/atomic"
)

// MetricID defines a public type used by goSession APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricEventsDispatched is an exported constant or variable used by the session engine.
	MetricEventsDispatched MetricID = iota
	// MetricEventsIgnored is an exported constant or variable used by the session engine.
	MetricEventsIgnored
	// MetricLoginSuccess is an exported constant or variable used by the session engine.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the session engine.
	MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the session engine.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the session engine.
	MetricRegisterFailure
	// MetricLogoutCompleted is an exported constant or variable used by the session engine.
	MetricLogoutCompleted
	// MetricRevokeFailure is an exported constant or variable used by the session engine.
	MetricRevokeFailure
	// MetricSessionRestored is an exported constant or variable used by the session engine.
	MetricSessionRestored
	// MetricRestoreMiss is an exported constant or variable used by the session engine.
	MetricRestoreMiss
	// MetricSessionRefreshed is an exported constant or variable used by the session engine.
	MetricSessionRefreshed
	// MetricOnboardingCompleted is an exported constant or variable used by the session engine.
	MetricOnboardingCompleted
	// MetricOnboardingFailure is an exported constant or variable used by the session engine.
	MetricOnboardingFailure
	// MetricValidationRejected is an exported constant or variable used by the session engine.
	MetricValidationRejected
	// MetricEffectTimeout is an exported constant or variable used by the session engine.
	MetricEffectTimeout

	metricCount
)

var metricNames = [metricCount]string{
	MetricEventsDispatched:    "events_dispatched",
	MetricEventsIgnored:       "events_ignored",
	MetricLoginSuccess:        "login_success",
	MetricLoginFailure:        "login_failure",
	MetricRegisterSuccess:     "register_success",
	MetricRegisterFailure:     "register_failure",
	MetricLogoutCompleted:     "logout_completed",
	MetricRevokeFailure:       "revoke_failure",
	MetricSessionRestored:     "session_restored",
	MetricRestoreMiss:         "restore_miss",
	MetricSessionRefreshed:    "session_refreshed",
	MetricOnboardingCompleted: "onboarding_completed",
	MetricOnboardingFailure:   "onboarding_failure",
	MetricValidationRejected:  "validation_rejected",
	MetricEffectTimeout:       "effect_timeout",
}

// String returns the stable metric name used in logs and dashboards.
func (id MetricID) String() string {
	if id >= metricCount {
		return "unknown"
	}
	return metricNames[id]
}

// Metrics is a fixed table of atomic counters. A nil *Metrics is a valid
// no-op receiver so disabled metrics cost a single branch per increment.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

func newMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{}
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot defines a public type used by goSession APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot returns a point-in-time copy of every counter. Zero-valued
// counters are included so dashboards see stable keys.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricCount),
	}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
