package models

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// 排行榜Redis键名
const (
	LeaderboardKillsKey = "leaderboard:kills"
	AbilityKillsKey     = "leaderboard:ability_kills"

	// 房间击杀计数键前缀
	RoomKillsPrefix = "room:kills:"

	// 房间计数过期时间
	RoomKillsTTL = 30 * time.Minute
)

// RedisLeaderboard Redis击杀排行榜
type RedisLeaderboard struct {
	client *redis.Client
}

// NewRedisLeaderboard 创建Redis排行榜管理器
func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

// Record 记录一批战斗事件，只统计击杀
func (rl *RedisLeaderboard) Record(ctx context.Context, roomID string, events []CombatEvent) error {
	kills := 0
	pipe := rl.client.TxPipeline()
	for _, ev := range events {
		if ev.Type != EventKill {
			continue
		}
		kills++
		pipe.HIncrBy(ctx, AbilityKillsKey, string(ev.Ability), 1)
	}
	if kills == 0 {
		return nil
	}

	pipe.ZIncrBy(ctx, LeaderboardKillsKey, float64(kills), roomID)
	roomKey := RoomKillsPrefix + roomID
	pipe.IncrBy(ctx, roomKey, int64(kills))
	pipe.Expire(ctx, roomKey, RoomKillsTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入击杀排行榜失败: %w", err)
	}
	return nil
}

// GetLeaderboard 获取击杀排行榜（按击杀数降序）
func (rl *RedisLeaderboard) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	members, err := rl.client.ZRevRangeWithScores(ctx, LeaderboardKillsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		roomID, ok := member.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			RoomID: roomID,
			Kills:  member.Score,
			Rank:   i + 1,
		})
	}
	return entries, nil
}

// GetRoomRank 获取房间排名，不在榜上返回 -1
func (rl *RedisLeaderboard) GetRoomRank(ctx context.Context, roomID string) (int, error) {
	rank, err := rl.client.ZRevRank(ctx, LeaderboardKillsKey, roomID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return int(rank) + 1, nil // Redis排名从0开始
}

// GetAbilityKills 获取各技能的累计击杀数
func (rl *RedisLeaderboard) GetAbilityKills(ctx context.Context) (map[AbilityID]int64, error) {
	raw, err := rl.client.HGetAll(ctx, AbilityKillsKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[AbilityID]int64, len(raw))
	for ability, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[AbilityID(ability)] = n
	}
	return out, nil
}
