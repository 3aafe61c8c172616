// player.go

package models

// ConnectionRole 连接角色
type ConnectionRole string

const (
	// RoleController 控制玩家角色
	RoleController ConnectionRole = "controller"
	// RoleSpectator 只读观战
	RoleSpectator ConnectionRole = "spectator"
)

// PlayerSession 玩家会话信息
type PlayerSession struct {
	Subject      string         `json:"subject"`
	ConnectionID string         `json:"connection_id"`
	RoomID       string         `json:"room_id"`
	Role         ConnectionRole `json:"role"`
}
