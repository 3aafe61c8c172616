package game

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

// tubeSegments 脉冲中心线的分段数
const tubeSegments = 20

// ShapeKind 命中判定形状
type ShapeKind int

const (
	// ShapeSphere 按中心点距离判定
	ShapeSphere ShapeKind = iota
	// ShapeTube 按管道包围盒判定
	ShapeTube
)

// ImpactShape 命中判定形状参数
type ImpactShape struct {
	Kind   ShapeKind
	Radius float64
	// Path 管道中心线（局部坐标，+Z 为前进方向）
	Path []mgl64.Vec3
}

// ProjectileSpec 投射物种类参数
type ProjectileSpec struct {
	Kind              models.ProjectileKind
	Ability           models.AbilityID
	Damage            float64
	Speed             float64 // 单位/秒
	Lifespan          time.Duration
	FlightHeight      float64
	FreezeDuration    time.Duration
	ExplosionDuration time.Duration
	Shape             ImpactShape
}

// NewProjectileSpec 根据配置生成投射物参数
func NewProjectileSpec(kind models.ProjectileKind, cfg config.ProjectileConfig) ProjectileSpec {
	spec := ProjectileSpec{
		Kind:              kind,
		Damage:            cfg.Damage,
		Speed:             cfg.Speed,
		Lifespan:          cfg.Lifespan,
		FlightHeight:      cfg.FlightHeight,
		FreezeDuration:    cfg.FreezeDuration,
		ExplosionDuration: cfg.ExplosionDuration,
	}
	switch kind {
	case models.ProjectilePulse:
		spec.Ability = models.AbilityPulse
		spec.Shape = ImpactShape{Kind: ShapeTube, Radius: cfg.Radius, Path: pulsePath()}
	default:
		spec.Ability = models.AbilityBolt
		spec.Shape = ImpactShape{Kind: ShapeSphere, Radius: cfg.Radius}
	}
	return spec
}

// pulsePath 脉冲弧线：竖直平面内的二次贝塞尔曲线绕X轴旋转90度后平躺，弧顶朝前
func pulsePath() []mgl64.Vec3 {
	p0 := mgl64.Vec3{-3, 0, 0}
	p1 := mgl64.Vec3{0, 3, 0}
	p2 := mgl64.Vec3{3, 0, 0}
	lay := mgl64.Rotate3DX(math.Pi / 2)

	path := make([]mgl64.Vec3, 0, tubeSegments+1)
	for i := 0; i <= tubeSegments; i++ {
		t := float64(i) / tubeSegments
		path = append(path, lay.Mul3x1(mgl64.QuadraticBezierCurve3D(t, p0, p1, p2)))
	}
	return path
}

// ProjectilePhase 投射物阶段
type ProjectilePhase int

const (
	// PhaseFlying 飞行中，可命中
	PhaseFlying ProjectilePhase = iota
	// PhaseExploding 火球命中后的爆炸阶段
	PhaseExploding
	// PhaseSpent 已失效，等待移除
	PhaseSpent
)

// Projectile 投射物
type Projectile struct {
	ID         string
	Spec       ProjectileSpec
	Position   mgl64.Vec3
	Direction  mgl64.Vec3 // 水平单位向量
	SpawnTime  time.Duration
	ExplodedAt time.Duration

	phase  ProjectilePhase
	bounds AABB
}

// NewProjectile 在 origin 处生成投射物，direction 须为非零水平向量
func NewProjectile(spec ProjectileSpec, origin, direction mgl64.Vec3, now time.Duration) *Projectile {
	p := &Projectile{
		ID:        uuid.New().String(),
		Spec:      spec,
		Position:  origin,
		Direction: direction.Normalize(),
		SpawnTime: now,
	}
	p.Position[1] = spec.FlightHeight
	p.reorient()
	return p
}

// Phase 当前阶段
func (p *Projectile) Phase() ProjectilePhase {
	return p.phase
}

// Alive 是否仍可命中
func (p *Projectile) Alive() bool {
	return p.phase == PhaseFlying
}

// Expired 存活时间是否已达到寿命
func (p *Projectile) Expired(now time.Duration) bool {
	return now-p.SpawnTime >= p.Spec.Lifespan
}

// Update 推进一帧，返回投射物是否仍在飞行
func (p *Projectile) Update(sim *SimContext, dt time.Duration) bool {
	if p.phase != PhaseFlying {
		return false
	}
	if p.Expired(sim.Now()) {
		p.phase = PhaseSpent
		return false
	}

	p.Position = p.Position.Add(p.Direction.Mul(p.Spec.Speed * dt.Seconds()))
	p.Position[1] = p.Spec.FlightHeight
	p.reorient()
	return true
}

// Explode 火球进入爆炸阶段，重复调用或非火球调用均无效果
func (p *Projectile) Explode(now time.Duration) bool {
	if p.Spec.Kind != models.ProjectileBolt || p.phase != PhaseFlying {
		return false
	}
	p.phase = PhaseExploding
	p.ExplodedAt = now
	return true
}

// Consume 命中后消耗投射物
func (p *Projectile) Consume(now time.Duration) {
	if p.Spec.Kind == models.ProjectileBolt {
		p.Explode(now)
		return
	}
	if p.phase == PhaseFlying {
		p.phase = PhaseSpent
	}
}

// Bounds 世界坐标包围盒
func (p *Projectile) Bounds() AABB {
	return p.bounds
}

// Hits 命中判定
func (p *Projectile) Hits(s *Skeleton) bool {
	switch p.Spec.Shape.Kind {
	case ShapeTube:
		return p.bounds.Intersects(s.Bounds())
	default:
		return p.Position.Sub(s.Position).Len() < p.Spec.Shape.Radius
	}
}

// reorient 朝向前进方向并重算包围盒
func (p *Projectile) reorient() {
	shape := p.Spec.Shape
	if shape.Kind != ShapeTube {
		p.bounds = BoxAround(p.Position, mgl64.Vec3{shape.Radius, shape.Radius, shape.Radius})
		return
	}

	yaw := mgl64.Rotate3DY(math.Atan2(p.Direction.X(), p.Direction.Z()))
	box := emptyAABB()
	for _, local := range shape.Path {
		box.ExpandByPoint(yaw.Mul3x1(local).Add(p.Position))
	}
	box.ExpandByScalar(shape.Radius)
	p.bounds = box
}

// Explosion 火球爆炸特效，仅用于渲染
type Explosion struct {
	ID        string
	Position  mgl64.Vec3
	StartedAt time.Duration
	Duration  time.Duration
}

// Done 特效是否结束
func (e Explosion) Done(now time.Duration) bool {
	return now-e.StartedAt >= e.Duration
}

// Progress 播放进度 0..1
func (e Explosion) Progress(now time.Duration) float64 {
	if e.Duration <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, float64(now-e.StartedAt)/float64(e.Duration)))
}
