package adjust

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler creates one-shot and repeating timers. Tests substitute a manual
// implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// RealScheduler uses the runtime clock.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (RealScheduler) Every(d time.Duration, f func()) Timer {
	t := &repeater{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				f()
			}
		}
	}()
	return t
}

type repeater struct {
	once sync.Once
	done chan struct{}
}

func (r *repeater) Stop() bool {
	stopped := false
	r.once.Do(func() {
		close(r.done)
		stopped = true
	})
	return stopped
}
