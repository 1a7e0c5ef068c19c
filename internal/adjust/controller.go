package adjust

import (
	"math"
	"sync"
	"time"
)

// Direction of travel.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

// Settings parameterize a Controller.
type Settings struct {
	Step            float64
	AcceleratedStep float64
	Min             float64
	Max             float64
	HoldDelay       time.Duration
	RepeatInterval  time.Duration
	SnapToGrid      bool
	GridSize        float64
}

const (
	DefaultHoldDelay      = 500 * time.Millisecond
	DefaultRepeatInterval = 100 * time.Millisecond
	DefaultGridSize       = 10
)

func (s Settings) withDefaults() Settings {
	if s.HoldDelay <= 0 {
		s.HoldDelay = DefaultHoldDelay
	}
	if s.RepeatInterval <= 0 {
		s.RepeatInterval = DefaultRepeatInterval
	}
	if s.GridSize <= 0 {
		s.GridSize = DefaultGridSize
	}
	if s.Max < s.Min {
		s.Min, s.Max = s.Max, s.Min
	}
	return s
}

// Controller drives one value. OnChange runs for every applied step,
// including steps that clamp to the current value. No OnChange call is in
// flight or still to come once Release returns, so OnChange must not call
// Press or Release itself.
type Controller struct {
	settings  Settings
	scheduler Scheduler
	onChange  func(float64)

	// deliver is held from a step's computation through its onChange call.
	deliver sync.Mutex

	mu         sync.Mutex
	value      float64
	hold       uint64
	delay      Timer
	repeat     Timer
	firstAccel bool
}

func NewController(value float64, settings Settings, scheduler Scheduler, onChange func(float64)) *Controller {
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	if onChange == nil {
		onChange = func(float64) {}
	}
	settings = settings.withDefaults()
	return &Controller{
		settings:   settings,
		scheduler:  scheduler,
		onChange:   onChange,
		value:      Clamp(value, settings.Min, settings.Max),
		firstAccel: true,
	}
}

// Value returns the current value.
func (c *Controller) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// SetValue replaces the current value, e.g. when the record changed underneath.
func (c *Controller) SetValue(v float64) {
	c.mu.Lock()
	c.value = Clamp(v, c.settings.Min, c.settings.Max)
	c.mu.Unlock()
}

// Press applies one step and arms the hold delay. A press while already
// held restarts the gesture.
func (c *Controller) Press(dir Direction) {
	c.deliver.Lock()
	defer c.deliver.Unlock()
	c.mu.Lock()
	c.stopLocked()
	c.hold++
	hold := c.hold
	c.firstAccel = true
	c.value = Clamp(c.value+float64(dir)*c.settings.Step, c.settings.Min, c.settings.Max)
	value := c.value
	c.delay = c.scheduler.AfterFunc(c.settings.HoldDelay, func() { c.startRepeat(hold, dir) })
	c.mu.Unlock()

	c.onChange(value)
}

// Release cancels the pending delay and any active repeat. It waits for a
// step that is already being delivered.
func (c *Controller) Release() {
	c.deliver.Lock()
	defer c.deliver.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.hold++
	c.firstAccel = true
}

// Held reports whether a gesture is in progress.
func (c *Controller) Held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay != nil || c.repeat != nil
}

func (c *Controller) startRepeat(hold uint64, dir Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hold != c.hold {
		return
	}
	c.delay = nil
	c.repeat = c.scheduler.Every(c.settings.RepeatInterval, func() { c.tick(hold, dir) })
}

func (c *Controller) tick(hold uint64, dir Direction) {
	c.deliver.Lock()
	defer c.deliver.Unlock()
	c.mu.Lock()
	if hold != c.hold {
		c.mu.Unlock()
		return
	}
	var next float64
	if c.firstAccel && c.settings.SnapToGrid {
		next = snapToGrid(c.value, c.settings.GridSize, dir)
	} else {
		next = c.value + float64(dir)*c.settings.AcceleratedStep
	}
	c.firstAccel = false
	c.value = Clamp(next, c.settings.Min, c.settings.Max)
	value := c.value
	c.mu.Unlock()

	c.onChange(value)
}

func (c *Controller) stopLocked() {
	if c.delay != nil {
		c.delay.Stop()
		c.delay = nil
	}
	if c.repeat != nil {
		c.repeat.Stop()
		c.repeat = nil
	}
}

// snapToGrid moves to the next grid line in the direction of travel. A value
// already on a line moves a full grid.
func snapToGrid(v, grid float64, dir Direction) float64 {
	onLine := math.Mod(v, grid) == 0
	if dir > 0 {
		if onLine {
			return v + grid
		}
		return math.Ceil(v/grid) * grid
	}
	if onLine {
		return v - grid
	}
	return math.Floor(v/grid) * grid
}
