package game

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	c.Advance(16 * time.Millisecond)
	c.Advance(-time.Second)
	if got := c.Now(); got != 16*time.Millisecond {
		t.Errorf("Now() = %v, want 16ms", got)
	}
	if got := c.Delta(); got != 16*time.Millisecond {
		t.Errorf("Delta() = %v, want 16ms", got)
	}
}

func TestTickerClock(t *testing.T) {
	wall := &fakeWall{t: time.Unix(0, 0)}
	c := newTickerClockWith(wall.now)

	wall.t = wall.t.Add(20 * time.Millisecond)
	if c.Now() != 0 {
		t.Errorf("Now() before Tick = %v, want 0", c.Now())
	}
	if dt := c.Tick(); dt != 20*time.Millisecond {
		t.Errorf("Tick() = %v, want 20ms", dt)
	}

	// 墙钟回拨不产生负步长
	wall.t = wall.t.Add(-5 * time.Millisecond)
	if dt := c.Tick(); dt != 0 {
		t.Errorf("Tick() after wall clock went back = %v, want 0", dt)
	}
	wall.t = wall.t.Add(15 * time.Millisecond)
	if dt := c.Tick(); dt != 15*time.Millisecond {
		t.Errorf("Tick() = %v, want 15ms", dt)
	}
	if got := c.Now(); got != 35*time.Millisecond {
		t.Errorf("Now() = %v, want 35ms", got)
	}
	if got := c.Delta(); got != 15*time.Millisecond {
		t.Errorf("Delta() = %v, want 15ms", got)
	}
}
