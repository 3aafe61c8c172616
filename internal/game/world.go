package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// World 模拟世界，负责帧内更新顺序
// World 不是并发安全的，只能由一个 goroutine 驱动
type World struct {
	sim         *SimContext
	Player      *Player
	hostiles    []*Skeleton
	projectiles []*Projectile
	explosions  []Explosion
	resolver    *Resolver
	events      []models.CombatEvent

	// 输入
	targeting  GroundTargeting
	bindings   map[string]models.AbilityID
	pointerX   float64
	pointerY   float64
	hasPointer bool
}

// NewWorld 创建世界并在配置的出生点生成骷髅
func NewWorld(sim *SimContext, targeting GroundTargeting) *World {
	w := &World{
		sim:       sim,
		Player:    NewPlayer(sim),
		resolver:  NewResolver(sim.Log),
		targeting: targeting,
		bindings:  make(map[string]models.AbilityID),
	}
	for key, ability := range sim.Tuning.KeyBindings {
		w.bindings[strings.ToLower(key)] = models.AbilityID(ability)
	}
	for _, p := range sim.Tuning.Skeleton.SpawnPoints {
		w.SpawnSkeleton(mgl64.Vec3{p.X, p.Y, p.Z})
	}
	return w
}

// SpawnSkeleton 在指定位置生成骷髅
func (w *World) SpawnSkeleton(position mgl64.Vec3) *Skeleton {
	s := NewSkeleton(w.sim, position)
	w.hostiles = append(w.hostiles, s)
	return s
}

// Hostiles 所有骷髅（按加入顺序）
func (w *World) Hostiles() []*Skeleton {
	return append([]*Skeleton(nil), w.hostiles...)
}

// Projectiles 飞行中的投射物（按生成顺序）
func (w *World) Projectiles() []*Projectile {
	return append([]*Projectile(nil), w.projectiles...)
}

// Explosions 播放中的爆炸特效
func (w *World) Explosions() []Explosion {
	return append([]Explosion(nil), w.explosions...)
}

// Update 推进一帧
// 顺序：玩家移动 -> 投射物飞行 -> 骷髅状态 -> 碰撞结算 -> 清理
func (w *World) Update(dt time.Duration) error {
	now := w.sim.Now()

	w.Player.Update(w.sim, dt)

	for _, p := range w.projectiles {
		p.Update(w.sim, dt)
	}
	w.compactProjectiles()

	for _, s := range w.hostiles {
		if s.Update(w.sim) {
			w.emit(models.CombatEvent{
				Type:       models.EventRespawn,
				SimTime:    millis(now),
				SkeletonID: s.ID,
				Position:   models.FromVec(s.Position),
			})
		}
	}

	if err := w.resolver.Resolve(w, now); err != nil {
		return fmt.Errorf("碰撞结算失败: %w", err)
	}
	w.compactProjectiles()
	w.pruneExplosions(now)
	return nil
}

// CastAbility 向地面坐标释放技能
func (w *World) CastAbility(id models.AbilityID, target mgl64.Vec3) (*Projectile, CastOutcome) {
	now := w.sim.Now()
	p, outcome := w.Player.CastAbility(id, target, now)
	if outcome != CastOK {
		w.sim.Log.WithFields(logrus.Fields{
			"ability": id,
			"outcome": outcome.String(),
		}).Debug("技能释放失败")
		return nil, outcome
	}

	w.projectiles = append(w.projectiles, p)
	w.emit(models.CombatEvent{
		Type:         models.EventCast,
		SimTime:      millis(now),
		Ability:      id,
		ProjectileID: p.ID,
		Position:     models.FromVec(p.Position),
	})
	return p, CastOK
}

// DrainEvents 取出并清空累计的战斗事件
func (w *World) DrainEvents() []models.CombatEvent {
	events := w.events
	w.events = nil
	return events
}

func (w *World) emit(ev models.CombatEvent) {
	w.events = append(w.events, ev)
}

// compactProjectiles 移除不再飞行的投射物，爆炸中的火球转为爆炸特效
func (w *World) compactProjectiles() {
	kept := make([]*Projectile, 0, len(w.projectiles))
	for _, p := range w.projectiles {
		switch p.Phase() {
		case PhaseFlying:
			kept = append(kept, p)
		case PhaseExploding:
			w.explosions = append(w.explosions, Explosion{
				ID:        p.ID,
				Position:  p.Position,
				StartedAt: p.ExplodedAt,
				Duration:  p.Spec.ExplosionDuration,
			})
		}
	}
	w.projectiles = kept
}

func (w *World) pruneExplosions(now time.Duration) {
	kept := w.explosions[:0]
	for _, e := range w.explosions {
		if !e.Done(now) {
			kept = append(kept, e)
		}
	}
	w.explosions = kept
}

// Snapshot 世界快照
func (w *World) Snapshot() models.WorldSnapshot {
	now := w.sim.Now()
	snap := models.WorldSnapshot{
		Time:        millis(now),
		Player:      w.Player.snapshot(now),
		Skeletons:   make([]models.SkeletonSnapshot, 0, len(w.hostiles)),
		Projectiles: make([]models.ProjectileSnapshot, 0, len(w.projectiles)),
		Explosions:  make([]models.ExplosionSnapshot, 0, len(w.explosions)),
	}
	for _, s := range w.hostiles {
		snap.Skeletons = append(snap.Skeletons, s.snapshot())
	}
	for _, p := range w.projectiles {
		snap.Projectiles = append(snap.Projectiles, models.ProjectileSnapshot{
			ID:        p.ID,
			Kind:      p.Spec.Kind,
			Position:  models.FromVec(p.Position),
			Direction: models.FromVec(p.Direction),
			Alive:     p.Alive(),
		})
	}
	for _, e := range w.explosions {
		snap.Explosions = append(snap.Explosions, models.ExplosionSnapshot{
			ID:       e.ID,
			Position: models.FromVec(e.Position),
			Progress: e.Progress(now),
		})
	}
	return snap
}
