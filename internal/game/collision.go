package game

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// Resolver 投射物与骷髅的碰撞结算
type Resolver struct {
	log *logrus.Entry
}

// NewResolver 创建碰撞结算器
func NewResolver(log *logrus.Entry) *Resolver {
	return &Resolver{log: log.WithField("component", "collision")}
}

// Resolve 结算本帧所有命中
// 投射物按生成顺序、骷髅按加入顺序检测，每个投射物每帧最多命中一个骷髅
func (r *Resolver) Resolve(w *World, now time.Duration) error {
	for _, p := range w.projectiles {
		if !p.Alive() {
			continue
		}
		for _, s := range w.hostiles {
			if !s.Alive() || !p.Hits(s) {
				continue
			}
			if err := r.applyHit(w, p, s, now); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// applyHit 结算一次命中
func (r *Resolver) applyHit(w *World, p *Projectile, s *Skeleton, now time.Duration) error {
	died, err := s.TakeDamage(p.Spec.Damage, now)
	if err != nil {
		return fmt.Errorf("投射物 %s 命中骷髅 %s: %w", p.ID, s.ID, err)
	}

	w.emit(models.CombatEvent{
		Type:         models.EventHit,
		SimTime:      millis(now),
		Ability:      p.Spec.Ability,
		ProjectileID: p.ID,
		SkeletonID:   s.ID,
		Damage:       p.Spec.Damage,
		Position:     models.FromVec(s.Position),
	})

	if !died && s.Freeze(p.Spec.FreezeDuration, now) {
		w.emit(models.CombatEvent{
			Type:         models.EventFreeze,
			SimTime:      millis(now),
			Ability:      p.Spec.Ability,
			ProjectileID: p.ID,
			SkeletonID:   s.ID,
			Position:     models.FromVec(s.Position),
		})
	}

	p.Consume(now)

	if died {
		w.emit(models.CombatEvent{
			Type:         models.EventKill,
			SimTime:      millis(now),
			Ability:      p.Spec.Ability,
			ProjectileID: p.ID,
			SkeletonID:   s.ID,
			Position:     models.FromVec(s.Position),
		})
		r.log.WithFields(logrus.Fields{
			"skeleton": s.ID,
			"ability":  p.Spec.Ability,
		}).Info("骷髅被击杀")
	}

	r.log.WithFields(logrus.Fields{
		"projectile": p.ID,
		"skeleton":   s.ID,
		"health":     s.Health,
	}).Debug("投射物命中")
	return nil
}
