package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/credstore"
	"github.com/MrEthical07/goSession/token"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// The loadtest treats every simulated device as one dispatcher bound to its
// own Redis-backed credential store. The lifecycle phase drives
// register -> onboarding -> logout -> login per device; the restore phase
// then dispatches Started against the persisted sessions, which exercises
// the JWT parse and Redis load path without touching the provider.

func main() {
	var (
		devices     = flag.Int("devices", 5000, "number of simulated devices")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "loadtest", "credential store key prefix")
		idpLatency  = flag.Duration("idp-latency", 0, "artificial identity-provider latency per call")
	)
	flag.Parse()

	if *devices <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "devices and concurrency must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	tokens, err := token.NewManager(token.Config{
		TTL:           time.Hour,
		SigningMethod: token.MethodHS256,
		PrivateKey:    []byte("loadtest-secret"),
		Issuer:        "loadtest",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "token manager: %v\n", err)
		os.Exit(1)
	}

	provider := &syntheticProvider{tokens: tokens, latency: *idpLatency}
	logger := zerolog.Nop()

	fmt.Printf("building %d dispatchers...\n", *devices)
	startBuild := time.Now()
	dispatchers := make([]*goSession.Dispatcher, *devices)
	for i := range dispatchers {
		store, err := credstore.NewRedis(client, credstore.RedisConfig{
			Prefix: fmt.Sprintf("%s:%d", *prefix, i),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "store init: %v\n", err)
			os.Exit(1)
		}
		d, err := goSession.New().
			WithIdentityProvider(provider).
			WithCredentialStore(store).
			WithTokenManager(tokens).
			WithLogger(logger).
			Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "dispatcher build: %v\n", err)
			os.Exit(1)
		}
		dispatchers[i] = d
	}
	fmt.Printf("built in %s\n", time.Since(startBuild).Round(time.Millisecond))
	defer func() {
		for _, d := range dispatchers {
			d.Close()
		}
	}()

	lifecycleStats := runPhase(ctx, dispatchers, *concurrency, func(ctx context.Context, i int, d *goSession.Dispatcher) error {
		email := fmt.Sprintf("user-%d@loadtest.local", i)
		seq := []goSession.Event{
			goSession.RegisterRequested{Email: email, Password: "loadtest-pass", FullName: "Load Tester"},
			goSession.OnboardingCompleted{},
			goSession.LogoutRequested{},
			goSession.LoginRequested{Email: email, Password: "loadtest-pass"},
		}
		for _, ev := range seq {
			if err := d.Dispatch(ev).Wait(ctx); err != nil {
				return err
			}
		}
		if d.CurrentState().Phase != goSession.PhaseAuthenticated {
			return fmt.Errorf("device %d ended in %s", i, d.CurrentState().Phase)
		}
		return nil
	})

	restoreStats := runPhase(ctx, dispatchers, *concurrency, func(ctx context.Context, i int, d *goSession.Dispatcher) error {
		if err := d.Dispatch(goSession.Started{}).Wait(ctx); err != nil {
			return err
		}
		if d.CurrentState().Phase != goSession.PhaseAuthenticated {
			return fmt.Errorf("device %d restored to %s", i, d.CurrentState().Phase)
		}
		return nil
	})

	fmt.Println("---- results ----")
	printStats("lifecycle", lifecycleStats)
	printStats("restore", restoreStats)

	fmt.Println("---- aggregated metrics ----")
	totals := make(map[goSession.MetricID]uint64)
	for _, d := range dispatchers {
		for id, v := range d.MetricsSnapshot().Counters {
			totals[id] += v
		}
	}
	ids := make([]goSession.MetricID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if totals[id] > 0 {
			fmt.Printf("%-24s %d\n", id, totals[id])
		}
	}
}

func runPhase(ctx context.Context, dispatchers []*goSession.Dispatcher, concurrency int, op func(context.Context, int, *goSession.Dispatcher) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, len(dispatchers))
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= len(dispatchers) {
					return
				}
				t0 := time.Now()
				err := op(ctx, i, dispatchers[i])
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

// syntheticProvider accepts every credential pair and mints real JWTs so the
// restore phase parses genuine tokens. Refresh tokens are opaque and always
// accepted.
type syntheticProvider struct {
	tokens  *token.Manager
	latency time.Duration
	seq     atomic.Int64
}

func (p *syntheticProvider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *syntheticProvider) result(ctx context.Context, email string) (goSession.AuthResult, error) {
	if err := p.wait(ctx); err != nil {
		return goSession.AuthResult{}, err
	}
	uid := fmt.Sprintf("uid-%s", email)
	access, err := p.tokens.Issue(uid, email, "Load Tester")
	if err != nil {
		return goSession.AuthResult{}, err
	}
	return goSession.AuthResult{
		Identity: goSession.UserIdentity{
			UserID:   uid,
			Email:    email,
			FullName: "Load Tester",
		},
		AccessToken:  access,
		RefreshToken: fmt.Sprintf("refresh-%d", p.seq.Add(1)),
	}, nil
}

func (p *syntheticProvider) Authenticate(ctx context.Context, email, _ string) (goSession.AuthResult, error) {
	return p.result(ctx, email)
}

func (p *syntheticProvider) Register(ctx context.Context, email, _, _ string) (goSession.RegisterResult, error) {
	auth, err := p.result(ctx, email)
	if err != nil {
		return goSession.RegisterResult{}, err
	}
	return goSession.RegisterResult{AuthResult: auth, OnboardingRequired: true}, nil
}

func (p *syntheticProvider) Refresh(ctx context.Context, _ string) (goSession.AuthResult, error) {
	return p.result(ctx, "refreshed@loadtest.local")
}

func (p *syntheticProvider) Revoke(ctx context.Context, _ string) error {
	return p.wait(ctx)
}
