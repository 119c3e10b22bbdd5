package goSession

import (
	"sync"
	"testing"
)

func TestMetricsIncAndSnapshot(t *testing.T) {
	m := newMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLogoutCompleted)

	snap := m.Snapshot()
	if snap.Counters[MetricLoginSuccess] != 2 {
		t.Fatalf("expected 2 login successes, got %d", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricLogoutCompleted] != 1 {
		t.Fatalf("expected 1 logout, got %d", snap.Counters[MetricLogoutCompleted])
	}
	if snap.Counters[MetricLoginFailure] != 0 {
		t.Fatal("untouched counters must be present and zero")
	}
	if len(snap.Counters) != int(metricCount) {
		t.Fatalf("snapshot must carry stable keys, got %d of %d", len(snap.Counters), metricCount)
	}
}

func TestMetricsDisabledIsNilSafe(t *testing.T) {
	m := newMetrics(MetricsConfig{Enabled: false})
	if m != nil {
		t.Fatal("disabled metrics must be nil")
	}

	m.Inc(MetricLoginSuccess) // must not panic
	snap := m.Snapshot()
	if len(snap.Counters) != 0 {
		t.Fatal("nil metrics snapshot must be empty")
	}
}

func TestMetricsIncIgnoresOutOfRangeID(t *testing.T) {
	m := newMetrics(MetricsConfig{Enabled: true})
	m.Inc(metricCount)     // must not panic
	m.Inc(metricCount + 5) // must not panic
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	m := newMetrics(MetricsConfig{Enabled: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(MetricEventsDispatched)
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().Counters[MetricEventsDispatched]; got != 8000 {
		t.Fatalf("expected 8000, got %d", got)
	}
}

func TestDispatcherMetricsCountOperations(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeProvider{authFn: okAuthFn}, &memStore{})

	wait(t, d.Dispatch(Started{}))
	wait(t, d.Dispatch(LoginRequested{Email: "a@b.com", Password: "secret1"}))
	wait(t, d.Dispatch(LoginRequested{Email: "bad", Password: "x"}))
	wait(t, d.Dispatch(LogoutRequested{}))

	snap := d.MetricsSnapshot()
	if snap.Counters[MetricEventsDispatched] != 4 {
		t.Fatalf("expected 4 events dispatched, got %d", snap.Counters[MetricEventsDispatched])
	}
	if snap.Counters[MetricRestoreMiss] != 1 {
		t.Fatalf("expected 1 restore miss, got %d", snap.Counters[MetricRestoreMiss])
	}
	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected 1 login success, got %d", snap.Counters[MetricLoginSuccess])
	}
	if snap.Counters[MetricValidationRejected] != 1 {
		t.Fatalf("expected 1 validation rejection, got %d", snap.Counters[MetricValidationRejected])
	}
	if snap.Counters[MetricLogoutCompleted] != 1 {
		t.Fatalf("expected 1 logout, got %d", snap.Counters[MetricLogoutCompleted])
	}
}
