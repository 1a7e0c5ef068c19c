package coalesce_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"castedit/internal/coalesce"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(value string) coalesce.Func {
	return func(context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, value)
		return nil
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestSameKeyCollapsesToLastValue(t *testing.T) {
	c := coalesce.New(coalesce.Options{Delay: 20 * time.Millisecond})
	rec := &recorder{}
	ctx := context.Background()

	c.Schedule(ctx, "42/mood", rec.record("0.1"))
	c.Schedule(ctx, "42/mood", rec.record("0.2"))
	c.Schedule(ctx, "42/mood", rec.record("0.3"))
	c.Wait()

	calls := rec.snapshot()
	if len(calls) != 1 || calls[0] != "0.3" {
		t.Fatalf("expected single call with last value, got %v", calls)
	}
	m := c.Metrics()
	if got := testutil.ToFloat64(m.Scheduled); got != 3 {
		t.Fatalf("scheduled = %v", got)
	}
	if got := testutil.ToFloat64(m.Superseded); got != 2 {
		t.Fatalf("superseded = %v", got)
	}
	if got := testutil.ToFloat64(m.Dispatched); got != 1 {
		t.Fatalf("dispatched = %v", got)
	}
	if got := testutil.ToFloat64(m.Pending); got != 0 {
		t.Fatalf("pending gauge = %v", got)
	}
}

func TestDistinctKeysRunIndependently(t *testing.T) {
	c := coalesce.New(coalesce.Options{Delay: 10 * time.Millisecond})
	rec := &recorder{}
	ctx := context.Background()

	c.Schedule(ctx, "42/mood", rec.record("mood"))
	c.Schedule(ctx, "42/attitude", rec.record("attitude"))
	c.Schedule(ctx, "43/mood", rec.record("other"))
	c.Wait()

	if got := len(rec.snapshot()); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestFlushAllDropsPendingCalls(t *testing.T) {
	c := coalesce.New(coalesce.Options{Delay: time.Hour})
	rec := &recorder{}
	ctx := context.Background()

	c.Schedule(ctx, "a", rec.record("a"))
	c.Schedule(ctx, "b", rec.record("b"))
	if !c.Pending("a") || c.PendingCount() != 2 {
		t.Fatal("expected a and b pending")
	}
	c.FlushAll()
	c.Wait()

	if calls := rec.snapshot(); len(calls) != 0 {
		t.Fatalf("flushed calls must not run, got %v", calls)
	}
	if c.Pending("a") {
		t.Fatal("expected nothing pending after FlushAll")
	}
	if got := testutil.ToFloat64(c.Metrics().Dropped); got != 2 {
		t.Fatalf("dropped = %v", got)
	}
}

func TestDrainRunsPendingImmediately(t *testing.T) {
	c := coalesce.New(coalesce.Options{Delay: time.Hour})
	rec := &recorder{}
	ctx := context.Background()

	c.Schedule(ctx, "a", rec.record("first"))
	c.Schedule(ctx, "a", rec.record("second"))
	c.Schedule(ctx, "b", rec.record("b"))

	done := make(chan struct{})
	go func() {
		c.Drain()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Drain did not return")
	}
	calls := rec.snapshot()
	if len(calls) != 2 {
		t.Fatalf("expected two calls, got %v", calls)
	}
	for _, v := range calls {
		if v == "first" {
			t.Fatalf("superseded value dispatched: %v", calls)
		}
	}
}

func TestSameKeyCallsDoNotOverlap(t *testing.T) {
	c := coalesce.New(coalesce.Options{Delay: time.Millisecond})
	ctx := context.Background()

	var mu sync.Mutex
	active, maxActive := 0, 0
	var order []int
	release := make(chan struct{})
	slow := func(n int) coalesce.Func {
		return func(context.Context) error {
			mu.Lock()
			active++
			maxActive = max(maxActive, active)
			mu.Unlock()
			if n == 1 {
				<-release
			}
			mu.Lock()
			active--
			order = append(order, n)
			mu.Unlock()
			return nil
		}
	}

	c.Schedule(ctx, "k", slow(1))
	time.Sleep(30 * time.Millisecond)
	c.Schedule(ctx, "k", slow(2))
	time.Sleep(30 * time.Millisecond)
	close(release)
	c.Wait()

	if maxActive != 1 {
		t.Fatalf("same-key calls overlapped: max active %d", maxActive)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestFailuresAreCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := coalesce.New(coalesce.Options{Registerer: reg})
	c.Schedule(context.Background(), "k", func(context.Context) error { return errors.New("disk full") })
	c.Wait()

	if got := testutil.ToFloat64(c.Metrics().Failed); got != 1 {
		t.Fatalf("failed = %v", got)
	}
	count, err := testutil.GatherAndCount(reg, "castedit_coalesce_failed_total")
	if err != nil || count != 1 {
		t.Fatalf("expected registered failure metric, count=%d err=%v", count, err)
	}
}
