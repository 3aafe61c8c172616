// stats.go

package models

import (
	"time"
)

// CombatEventType 战斗事件类型
type CombatEventType string

const (
	// EventCast 技能释放
	EventCast CombatEventType = "cast"
	// EventHit 投射物命中
	EventHit CombatEventType = "hit"
	// EventKill 骷髅死亡
	EventKill CombatEventType = "kill"
	// EventRespawn 骷髅重生
	EventRespawn CombatEventType = "respawn"
	// EventFreeze 骷髅被冻结
	EventFreeze CombatEventType = "freeze"
)

// CombatEvent 战斗事件，由模拟在每帧产生，供广播和记录使用
type CombatEvent struct {
	Type         CombatEventType `json:"type"`
	SimTime      int64           `json:"sim_time"` // 模拟时间(毫秒)
	Ability      AbilityID       `json:"ability,omitempty"`
	ProjectileID string          `json:"projectile_id,omitempty"`
	SkeletonID   string          `json:"skeleton_id,omitempty"`
	Damage       float64         `json:"damage,omitempty"`
	Position     Vector3         `json:"position"`
}

// KillRecord 击杀记录
type KillRecord struct {
	RoomID       string    `json:"room_id"`
	SkeletonID   string    `json:"skeleton_id"`
	Ability      AbilityID `json:"ability"`
	ProjectileID string    `json:"projectile_id"`
	SimTime      int64     `json:"sim_time"`
	Position     Vector3   `json:"position"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	RoomID string  `json:"room_id"`
	Kills  float64 `json:"kills"`
	Rank   int     `json:"rank"`
}

// LeaderboardView 排行榜查询结果
type LeaderboardView struct {
	Entries      []LeaderboardEntry  `json:"entries"`
	AbilityKills map[AbilityID]int64 `json:"ability_kills"`
	RoomRank     *int                `json:"room_rank,omitempty"` // 仅在指定 room_id 时返回，-1 表示未上榜
}
