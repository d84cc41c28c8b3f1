package progressive

import (
	"time"
)

const (
	// InitialResolution is the block size of the first render after a view change.
	InitialResolution = 16
	// DefaultMinRenderInterval throttles coarse renders while the view is still changing.
	DefaultMinRenderInterval = 50 * time.Millisecond
)

const (
	Refining State = iota
	Settled
)

type State int

func (s State) String() string {
	if s == Settled {
		return "Settled"
	}
	return "Refining"
}

// Controller decides when to render and at which resolution. A view change resets it to a coarse resolution which is
// then halved on every render until the target resolution is reached.
type Controller struct {
	current           int
	lastRender        time.Time
	minRenderInterval time.Duration
	now               func() time.Time
	target            int
}

// NewController creates a controller refining down to target, which is clamped to at least 1.
func NewController(target int, minRenderInterval time.Duration) *Controller {
	if target < 1 {
		target = 1
	}
	if minRenderInterval <= 0 {
		minRenderInterval = DefaultMinRenderInterval
	}
	c := &Controller{
		minRenderInterval: minRenderInterval,
		now:               time.Now,
		target:            target,
	}
	c.Reset()
	return c
}

// SetClock replaces the time source.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Reset restarts refinement from the coarsest resolution.
func (c *Controller) Reset() {
	c.current = max(InitialResolution, c.target)
}

func (c *Controller) State() State {
	if c.current == c.target {
		return Settled
	}
	return Refining
}

// Resolution is the block size the next render will use.
func (c *Controller) Resolution() int {
	return c.current
}

func (c *Controller) Target() int {
	return c.target
}

// ShouldRender is true once refinement has settled, or while refining when the minimum interval has passed since the
// last render. The first render after creation is never throttled.
func (c *Controller) ShouldRender() bool {
	if c.State() == Settled {
		return true
	}
	return c.now().Sub(c.lastRender) > c.minRenderInterval
}

// NextResolution returns the block size to render at now, records the render time and steps the resolution towards
// the target. After Reset it yields 16, 8, 4, 2, 1, 1, ...
func (c *Controller) NextResolution() int {
	resolution := c.current
	if c.current > c.target {
		c.current = max(c.current/2, c.target)
	}
	c.lastRender = c.now()
	return resolution
}
