// skill.go

package models

// AbilityID 技能标识
type AbilityID string

const (
	// AbilityBolt 火球
	AbilityBolt AbilityID = "bolt"
	// AbilityPulse 冰冻脉冲
	AbilityPulse AbilityID = "pulse"
)

// ProjectileKind 投射物种类
type ProjectileKind string

const (
	// ProjectileBolt 火球，按点距离判定命中，命中后爆炸
	ProjectileBolt ProjectileKind = "bolt"
	// ProjectilePulse 冰冻脉冲，按包围盒判定命中，命中后冻结目标
	ProjectilePulse ProjectileKind = "pulse"
)

// KindOf 返回技能发射的投射物种类
func (id AbilityID) KindOf() (ProjectileKind, bool) {
	switch id {
	case AbilityBolt:
		return ProjectileBolt, true
	case AbilityPulse:
		return ProjectilePulse, true
	default:
		return "", false
	}
}
