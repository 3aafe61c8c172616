package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// ErrInvalidDamage 伤害值为负数或非有限数
var ErrInvalidDamage = errors.New("invalid damage amount")

// StatusEffect 限时状态
type StatusEffect struct {
	Active bool
	Until  time.Duration
}

// Skeleton 骷髅敌人
type Skeleton struct {
	ID          string
	Position    mgl64.Vec3
	Health      float64
	MaxHealth   float64
	State       models.SkeletonState
	Frozen      StatusEffect
	HalfExtents mgl64.Vec3

	respawnAt       time.Duration
	respawnTime     time.Duration
	groundHeight    float64
	spawnHalfExtent float64
}

// NewSkeleton 在指定位置生成满血骷髅
func NewSkeleton(sim *SimContext, position mgl64.Vec3) *Skeleton {
	t := sim.Tuning.Skeleton
	return &Skeleton{
		ID:              uuid.New().String(),
		Position:        position,
		Health:          t.MaxHealth,
		MaxHealth:       t.MaxHealth,
		State:           models.SkeletonAlive,
		HalfExtents:     mgl64.Vec3{t.Size.X / 2, t.Size.Y / 2, t.Size.Z / 2},
		respawnTime:     t.RespawnTime,
		groundHeight:    t.GroundHeight,
		spawnHalfExtent: t.SpawnHalfExtent,
	}
}

// Alive 是否存活
func (s *Skeleton) Alive() bool {
	return s.State == models.SkeletonAlive
}

// IsFrozen 是否处于冻结状态
func (s *Skeleton) IsFrozen() bool {
	return s.Frozen.Active
}

// RespawnAt 重生时间，存活时返回 false
func (s *Skeleton) RespawnAt() (time.Duration, bool) {
	if s.State != models.SkeletonDead {
		return 0, false
	}
	return s.respawnAt, true
}

// TakeDamage 受到伤害，返回是否因此死亡
// 非存活骷髅忽略伤害，生命值不低于 0
func (s *Skeleton) TakeDamage(amount float64, now time.Duration) (bool, error) {
	if amount < 0 || !finite(amount) {
		return false, fmt.Errorf("%w: %v", ErrInvalidDamage, amount)
	}
	if !s.Alive() {
		return false, nil
	}

	s.Health = math.Max(0, s.Health-amount)
	if s.Health > 0 {
		return false, nil
	}

	s.State = models.SkeletonDead
	s.Frozen = StatusEffect{}
	s.respawnAt = now + s.respawnTime
	return true, nil
}

// Freeze 冻结一段时间，已冻结时不延长
func (s *Skeleton) Freeze(d, now time.Duration) bool {
	if d <= 0 || !s.Alive() || s.Frozen.Active {
		return false
	}
	s.Frozen = StatusEffect{Active: true, Until: now + d}
	return true
}

// Update 处理重生和冻结到期，返回本帧是否重生
func (s *Skeleton) Update(sim *SimContext) bool {
	now := sim.Now()
	switch s.State {
	case models.SkeletonDead:
		if now >= s.respawnAt {
			s.respawn(sim)
			return true
		}
	case models.SkeletonAlive:
		if s.Frozen.Active && now >= s.Frozen.Until {
			s.Frozen = StatusEffect{}
		}
	}
	return false
}

// respawn 在重生区域内随机位置满血复活
func (s *Skeleton) respawn(sim *SimContext) {
	s.State = models.SkeletonRespawning

	h := s.spawnHalfExtent
	s.Position = mgl64.Vec3{
		sim.Rand.Float64()*2*h - h,
		s.groundHeight,
		sim.Rand.Float64()*2*h - h,
	}
	s.Health = s.MaxHealth
	s.Frozen = StatusEffect{}
	s.respawnAt = 0
	s.State = models.SkeletonAlive

	sim.Log.WithFields(logrus.Fields{
		"skeleton": s.ID,
		"x":        s.Position.X(),
		"z":        s.Position.Z(),
	}).Info("骷髅重生")
}

// Bounds 世界坐标包围盒
func (s *Skeleton) Bounds() AABB {
	return BoxAround(s.Position, s.HalfExtents)
}

func (s *Skeleton) snapshot() models.SkeletonSnapshot {
	return models.SkeletonSnapshot{
		ID:        s.ID,
		Position:  models.FromVec(s.Position),
		State:     s.State,
		Health:    s.Health,
		MaxHealth: s.MaxHealth,
		Frozen:    s.Frozen.Active,
	}
}
