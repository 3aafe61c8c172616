package game

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/logger"
)

// SimContext 模拟上下文
// 由世界持有并传给每个实体的 Update，实体不访问任何全局状态
type SimContext struct {
	Clock  Clock
	Rand   *rand.Rand
	Log    *logrus.Entry
	Tuning config.SimulationConfig
}

// NewSimContext 创建模拟上下文
// seed 为 0 时取当前时间，log 为 nil 时丢弃日志
func NewSimContext(clock Clock, tuning config.SimulationConfig, log *logrus.Entry) *SimContext {
	seed := tuning.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &SimContext{
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(seed)),
		Log:    log,
		Tuning: tuning,
	}
}

// Now 当前模拟时间
func (s *SimContext) Now() time.Duration {
	return s.Clock.Now()
}

// millis 模拟时间转换为毫秒
func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
