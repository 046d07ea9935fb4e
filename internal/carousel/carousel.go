// Package carousel cycles through the listing promotions.
package carousel

import (
	"context"
	"time"
)

// DefaultInterval is the auto-advance period.
const DefaultInterval = 5 * time.Second

// Direction of the last manual move. Renderers use it to pick the slide animation.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Carousel holds the displayed promotion index. It is not safe for concurrent
// use; Run hands every tick to the owner's executor.
type Carousel struct {
	count     int
	index     int
	direction Direction
	inFlight  bool
}

func New(count int) *Carousel {
	c := &Carousel{direction: Forward}
	c.Resize(count)
	return c
}

func (c *Carousel) Index() int           { return c.index }
func (c *Carousel) Count() int           { return c.count }
func (c *Carousel) Direction() Direction { return c.direction }

// InFlight reports whether a manual transition is still animating.
func (c *Carousel) InFlight() bool { return c.inFlight }

// Resize adopts a new promotion count and clamps the index into range.
func (c *Carousel) Resize(count int) {
	if count < 0 {
		count = 0
	}
	c.count = count
	if count == 0 {
		c.index = 0
		c.inFlight = false
		return
	}
	if c.index >= count {
		c.index = count - 1
	}
}

// Next moves forward one promotion. It returns false while a transition is
// in flight or when there is nothing to show.
func (c *Carousel) Next() bool {
	return c.move(Forward)
}

// Previous moves back one promotion.
func (c *Carousel) Previous() bool {
	return c.move(Backward)
}

func (c *Carousel) move(d Direction) bool {
	if c.inFlight || c.count == 0 {
		return false
	}
	c.direction = d
	c.index = c.wrap(c.index + int(d))
	c.inFlight = true
	return true
}

// Settle ends the current transition.
func (c *Carousel) Settle() {
	c.inFlight = false
}

// Tick advances one promotion unless a manual transition is animating.
// Ticks do not themselves block later moves.
func (c *Carousel) Tick() bool {
	if c.inFlight || c.count == 0 {
		return false
	}
	c.direction = Forward
	c.index = c.wrap(c.index + 1)
	return true
}

func (c *Carousel) wrap(i int) int {
	return ((i % c.count) + c.count) % c.count
}

// Run calls Tick every interval through exec until ctx is done. exec runs the
// tick on the goroutine that owns c.
func (c *Carousel) Run(ctx context.Context, interval time.Duration, exec func(func())) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			exec(func() { c.Tick() })
		}
	}
}
