package game

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// CastOutcome 施法结果
type CastOutcome int

const (
	// CastOK 释放成功
	CastOK CastOutcome = iota
	// CastOnCooldown 冷却中
	CastOnCooldown
	// CastNoTarget 没有有效目标点
	CastNoTarget
	// CastUnknownAbility 未知技能或按键未绑定
	CastUnknownAbility
)

func (o CastOutcome) String() string {
	switch o {
	case CastOK:
		return "ok"
	case CastOnCooldown:
		return "on_cooldown"
	case CastNoTarget:
		return "no_target"
	case CastUnknownAbility:
		return "unknown_ability"
	default:
		return "unknown"
	}
}

// AbilityState 技能冷却状态
type AbilityState struct {
	ID         models.AbilityID
	Projectile ProjectileSpec
	Cooldown   time.Duration
	LastCast   time.Duration

	cast bool // 是否释放过，首次释放不受冷却限制
}

func newAbilityState(id models.AbilityID, spec ProjectileSpec, cooldown time.Duration) *AbilityState {
	return &AbilityState{ID: id, Projectile: spec, Cooldown: cooldown}
}

// Ready 是否可释放
func (a *AbilityState) Ready(now time.Duration) bool {
	return !a.cast || now-a.LastCast >= a.Cooldown
}

// CooldownRemainingFraction 剩余冷却比例，0 表示可用
func (a *AbilityState) CooldownRemainingFraction(now time.Duration) float64 {
	if !a.cast {
		return 0
	}
	f := 1 - float64(now-a.LastCast)/float64(a.Cooldown)
	return math.Min(1, math.Max(0, f))
}

// TryCast 尝试从 caster 向 target 释放，失败时不改变任何状态
func (a *AbilityState) TryCast(caster, target mgl64.Vec3, now time.Duration) (*Projectile, CastOutcome) {
	if !a.Ready(now) {
		return nil, CastOnCooldown
	}
	if !finiteVec(target) {
		return nil, CastNoTarget
	}
	aim := flatten(target.Sub(caster))
	if aim.Len() < minAimLength {
		return nil, CastNoTarget
	}

	a.cast = true
	a.LastCast = now
	return NewProjectile(a.Projectile, caster, aim, now), CastOK
}
