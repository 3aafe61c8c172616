package game

import (
	"sync"
	"time"
)

// Clock 模拟时钟，返回自模拟开始以来经过的时间
type Clock interface {
	Now() time.Duration
	Delta() time.Duration
}

// ManualClock 手动推进的时钟，用于测试和离线回放
type ManualClock struct {
	now   time.Duration
	delta time.Duration
}

// NewManualClock 创建手动时钟
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now 当前模拟时间
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Delta 最近一次推进的步长
func (c *ManualClock) Delta() time.Duration {
	return c.delta
}

// Advance 推进时钟
func (c *ManualClock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
		c.delta = dt
	}
}

// TickerClock 由房间主循环驱动的墙钟
// 模拟时间只在 Tick 时前进，同一帧内 Now 保持不变，墙钟回拨时不倒退
type TickerClock struct {
	mu    sync.RWMutex
	wall  func() time.Time
	last  time.Time
	now   time.Duration
	delta time.Duration
}

// NewTickerClock 创建墙钟
func NewTickerClock() *TickerClock {
	return newTickerClockWith(time.Now)
}

func newTickerClockWith(wall func() time.Time) *TickerClock {
	return &TickerClock{wall: wall, last: wall()}
}

// Now 当前模拟时间
func (c *TickerClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Delta 最近一帧的步长
func (c *TickerClock) Delta() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.delta
}

// Tick 读取墙钟并前进，返回本帧时间步长
func (c *TickerClock) Tick() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.wall()
	dt := t.Sub(c.last)
	if dt < 0 {
		dt = 0
	}
	c.last = t
	c.now += dt
	c.delta = dt
	return dt
}
