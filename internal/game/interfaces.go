package game

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
)

//go:generate go tool mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=game

// GroundTargeting 把屏幕坐标换算为地面坐标，未命中地面时返回 false
type GroundTargeting interface {
	CastToGround(screenX, screenY float64) (mgl64.Vec3, bool)
}

// EventRecorder 战斗事件记录
type EventRecorder interface {
	Record(ctx context.Context, roomID string, events []models.CombatEvent) error
}

// LeaderboardReader 击杀排行榜查询
type LeaderboardReader interface {
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	GetRoomRank(ctx context.Context, roomID string) (int, error)
	GetAbilityKills(ctx context.Context) (map[models.AbilityID]int64, error)
}
