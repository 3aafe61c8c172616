// entity.go

package models

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 三维向量（线上传输格式）
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromVec 从 mgl64 向量转换
func FromVec(v mgl64.Vec3) Vector3 {
	return Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Vec 转换为 mgl64 向量
func (v Vector3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// SkeletonState 骷髅状态
type SkeletonState string

const (
	// SkeletonAlive 存活
	SkeletonAlive SkeletonState = "alive"
	// SkeletonDead 死亡，等待重生
	SkeletonDead SkeletonState = "dead"
	// SkeletonRespawning 重生中
	SkeletonRespawning SkeletonState = "respawning"
)

// PlayerSnapshot 玩家快照
type PlayerSnapshot struct {
	ID          string            `json:"id"`
	Position    Vector3           `json:"position"`
	Destination *Vector3          `json:"destination,omitempty"`
	Abilities   []AbilitySnapshot `json:"abilities"`
}

// AbilitySnapshot 技能冷却快照
type AbilitySnapshot struct {
	ID                AbilityID `json:"id"`
	CooldownRemaining float64   `json:"cooldown_remaining"` // 0 表示可用, 1 表示刚释放
}

// ProjectileSnapshot 投射物快照
type ProjectileSnapshot struct {
	ID        string         `json:"id"`
	Kind      ProjectileKind `json:"kind"`
	Position  Vector3        `json:"position"`
	Direction Vector3        `json:"direction"`
	Alive     bool           `json:"alive"`
}

// SkeletonSnapshot 骷髅快照
type SkeletonSnapshot struct {
	ID        string        `json:"id"`
	Position  Vector3       `json:"position"`
	State     SkeletonState `json:"state"`
	Health    float64       `json:"health"`
	MaxHealth float64       `json:"max_health"`
	Frozen    bool          `json:"frozen"`
}

// ExplosionSnapshot 爆炸特效快照
type ExplosionSnapshot struct {
	ID       string  `json:"id"`
	Position Vector3 `json:"position"`
	Progress float64 `json:"progress"` // 0..1
}

// WorldSnapshot 世界快照，供渲染层只读使用
type WorldSnapshot struct {
	Time        int64                `json:"time"` // 模拟时间(毫秒)
	Player      PlayerSnapshot       `json:"player"`
	Skeletons   []SkeletonSnapshot   `json:"skeletons"`
	Projectiles []ProjectileSnapshot `json:"projectiles"`
	Explosions  []ExplosionSnapshot  `json:"explosions"`
}
