package coalesce

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"castedit/internal/logging"
)

// Func performs one persistence call.
type Func func(ctx context.Context) error

// Options configures a Coalescer.
type Options struct {
	Delay      time.Duration
	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeSuperseded
	outcomeDropped
)

type call struct {
	ctx    context.Context
	fn     Func
	timer  *time.Timer
	cancel outcome
}

type slot struct {
	pending *call
	queued  *call
	running bool
}

// Coalescer debounces calls per key. The zero value is not usable; use New.
type Coalescer struct {
	delay   time.Duration
	logger  *slog.Logger
	metrics *Metrics

	mu    sync.Mutex
	slots map[string]*slot
	wg    sync.WaitGroup
}

func New(opts Options) *Coalescer {
	return &Coalescer{
		delay:   opts.Delay,
		logger:  logging.NewComponentLogger(opts.Logger, "coalesce"),
		metrics: NewMetrics(opts.Registerer),
		slots:   make(map[string]*slot),
	}
}

// Metrics exposes the counters for inspection.
func (c *Coalescer) Metrics() *Metrics {
	return c.metrics
}

// Schedule arranges for fn to run after the delay unless another call is
// scheduled under key first.
func (c *Coalescer) Schedule(ctx context.Context, key string, fn Func) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.slots[key]
	if s == nil {
		s = &slot{}
		c.slots[key] = s
	}
	if prev := s.pending; prev != nil {
		c.cancelLocked(prev, outcomeSuperseded)
	}

	next := &call{ctx: ctx, fn: fn}
	c.wg.Add(1)
	c.metrics.Scheduled.Inc()
	c.metrics.Pending.Inc()
	s.pending = next
	next.timer = time.AfterFunc(c.delay, func() { c.fire(key, next) })
}

// Pending reports whether key has a call waiting for its delay.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slots[key]
	return s != nil && s.pending != nil
}

// PendingCount returns how many keys have a call waiting to run.
func (c *Coalescer) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.slots {
		if s.pending != nil || s.queued != nil {
			n++
		}
	}
	return n
}

// FlushAll cancels every pending call without running it. Calls already
// executing are not interrupted.
func (c *Coalescer) FlushAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key, s := range c.slots {
		if s.pending != nil {
			c.cancelLocked(s.pending, outcomeDropped)
			s.pending = nil
			dropped++
		}
		if s.queued != nil {
			c.finishLocked(s.queued, outcomeDropped)
			s.queued = nil
			dropped++
		}
		if !s.running {
			delete(c.slots, key)
		}
	}
	if dropped > 0 {
		c.logger.Debug("pending edits dropped", logging.Int("count", dropped))
	}
}

// Drain runs every pending call now and waits for all calls to finish.
func (c *Coalescer) Drain() {
	c.mu.Lock()
	var ready []func()
	for key, s := range c.slots {
		pending := s.pending
		if pending == nil || !pending.timer.Stop() {
			continue
		}
		ready = append(ready, func() { c.fire(key, pending) })
	}
	c.mu.Unlock()

	for _, run := range ready {
		go run()
	}
	c.Wait()
}

// Wait blocks until every scheduled call has run or been discarded. It must
// not race with Schedule.
func (c *Coalescer) Wait() {
	c.wg.Wait()
}

func (c *Coalescer) fire(key string, target *call) {
	c.mu.Lock()
	if target.cancel != outcomeNone {
		c.metrics.Pending.Dec()
		c.finishLocked(target, target.cancel)
		c.mu.Unlock()
		return
	}
	s := c.slots[key]
	s.pending = nil
	c.metrics.Pending.Dec()
	if s.running {
		if s.queued != nil {
			c.finishLocked(s.queued, outcomeSuperseded)
		}
		s.queued = target
		c.mu.Unlock()
		return
	}
	s.running = true
	c.mu.Unlock()

	for next := target; next != nil; {
		c.dispatch(key, next)

		c.mu.Lock()
		next = s.queued
		s.queued = nil
		if next == nil {
			s.running = false
			if s.pending == nil {
				delete(c.slots, key)
			}
		}
		c.mu.Unlock()
	}
}

func (c *Coalescer) dispatch(key string, target *call) {
	defer c.wg.Done()
	if err := target.fn(target.ctx); err != nil {
		c.metrics.Failed.Inc()
		c.logger.Debug("coalesced call failed", logging.String(logging.FieldEditKey, key), logging.Error(err))
		return
	}
	c.metrics.Dispatched.Inc()
}

// cancelLocked marks a pending call. If its timer already fired, fire
// finalizes it instead.
func (c *Coalescer) cancelLocked(target *call, reason outcome) {
	target.cancel = reason
	if target.timer.Stop() {
		c.metrics.Pending.Dec()
		c.finishLocked(target, reason)
	}
}

func (c *Coalescer) finishLocked(target *call, reason outcome) {
	switch reason {
	case outcomeSuperseded:
		c.metrics.Superseded.Inc()
	case outcomeDropped:
		c.metrics.Dropped.Inc()
	}
	c.wg.Done()
}
