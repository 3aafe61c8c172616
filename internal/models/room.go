package models

import (
	"time"
)

// RoomStatus 房间状态
type RoomStatus string

const (
	// RoomPlaying 游戏中
	RoomPlaying RoomStatus = "playing"
	// RoomEnded 已结束
	RoomEnded RoomStatus = "ended"
)

// RoomInfo 房间信息
type RoomInfo struct {
	ID          string     `json:"id"`
	Status      RoomStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	Connections int        `json:"connections"`
	FrameID     int64      `json:"frame_id"`
}
