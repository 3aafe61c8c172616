package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// Player 玩家角色，点地移动并释放技能
type Player struct {
	ID             string
	Position       mgl64.Vec3
	MoveSpeed      float64 // 单位/秒
	GroundHeight   float64
	ArrivalEpsilon float64

	destination    mgl64.Vec3
	hasDestination bool
	abilities      map[models.AbilityID]*AbilityState
	abilityOrder   []models.AbilityID
}

// NewPlayer 在原点创建玩家
func NewPlayer(sim *SimContext) *Player {
	t := sim.Tuning
	p := &Player{
		ID:             uuid.New().String(),
		Position:       mgl64.Vec3{0, t.Player.GroundHeight, 0},
		MoveSpeed:      t.Player.Speed,
		GroundHeight:   t.Player.GroundHeight,
		ArrivalEpsilon: t.Player.ArrivalEpsilon,
		abilities:      make(map[models.AbilityID]*AbilityState),
	}
	p.addAbility(models.AbilityBolt, t.Bolt)
	p.addAbility(models.AbilityPulse, t.Pulse)
	return p
}

func (p *Player) addAbility(id models.AbilityID, cfg config.ProjectileConfig) {
	kind, ok := id.KindOf()
	if !ok {
		return
	}
	p.abilities[id] = newAbilityState(id, NewProjectileSpec(kind, cfg), cfg.Cooldown)
	p.abilityOrder = append(p.abilityOrder, id)
}

// IssueMove 设置移动目的地，高度固定为玩家地面高度
func (p *Player) IssueMove(target mgl64.Vec3) bool {
	if !finiteVec(target) {
		return false
	}
	target[1] = p.GroundHeight
	p.destination = target
	p.hasDestination = true
	return true
}

// Destination 当前目的地
func (p *Player) Destination() (mgl64.Vec3, bool) {
	return p.destination, p.hasDestination
}

// Update 向目的地移动，步长不超过剩余距离
func (p *Player) Update(sim *SimContext, dt time.Duration) {
	if !p.hasDestination {
		return
	}

	to := p.destination.Sub(p.Position)
	remaining := to.Len()
	if remaining <= p.ArrivalEpsilon {
		p.arrive(sim)
		return
	}

	step := p.MoveSpeed * dt.Seconds()
	if step > remaining {
		step = remaining
	}
	p.Position = p.Position.Add(to.Mul(step / remaining))
	p.Position[1] = p.GroundHeight

	if p.destination.Sub(p.Position).Len() <= p.ArrivalEpsilon {
		p.arrive(sim)
	}
}

func (p *Player) arrive(sim *SimContext) {
	p.hasDestination = false
	sim.Log.WithField("position", p.Position).Debug("玩家到达目的地")
}

// Ability 获取技能状态
func (p *Player) Ability(id models.AbilityID) (*AbilityState, bool) {
	a, ok := p.abilities[id]
	return a, ok
}

// CastAbility 向目标点释放技能
func (p *Player) CastAbility(id models.AbilityID, target mgl64.Vec3, now time.Duration) (*Projectile, CastOutcome) {
	a, ok := p.abilities[id]
	if !ok {
		return nil, CastUnknownAbility
	}
	return a.TryCast(p.Position, target, now)
}

// CooldownRemainingFraction 技能剩余冷却比例，未知技能返回 0
func (p *Player) CooldownRemainingFraction(id models.AbilityID, now time.Duration) float64 {
	a, ok := p.abilities[id]
	if !ok {
		return 0
	}
	return a.CooldownRemainingFraction(now)
}

// FocusPoint 跟随相机的注视点
func (p *Player) FocusPoint() mgl64.Vec3 {
	return p.Position
}

// snapshot 玩家快照
func (p *Player) snapshot(now time.Duration) models.PlayerSnapshot {
	snap := models.PlayerSnapshot{
		ID:        p.ID,
		Position:  models.FromVec(p.Position),
		Abilities: make([]models.AbilitySnapshot, 0, len(p.abilityOrder)),
	}
	if p.hasDestination {
		d := models.FromVec(p.destination)
		snap.Destination = &d
	}
	for _, id := range p.abilityOrder {
		snap.Abilities = append(snap.Abilities, models.AbilitySnapshot{
			ID:                id,
			CooldownRemaining: p.abilities[id].CooldownRemainingFraction(now),
		})
	}
	return snap
}
