package models

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CombatLog 基于PostgreSQL的击杀日志
type CombatLog struct {
	db *sql.DB
}

// NewCombatLog 创建击杀日志
func NewCombatLog(db *sql.DB) *CombatLog {
	return &CombatLog{db: db}
}

// Record 追加一批战斗事件中的击杀
func (l *CombatLog) Record(ctx context.Context, roomID string, events []CombatEvent) error {
	hasKill := false
	for _, ev := range events {
		if ev.Type == EventKill {
			hasKill = true
			break
		}
	}
	if !hasKill {
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO combat_log (room_id, skeleton_id, ability, projectile_id, sim_time_ms, pos_x, pos_y, pos_z, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("准备语句失败: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, ev := range events {
		if ev.Type != EventKill {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			roomID, ev.SkeletonID, string(ev.Ability), ev.ProjectileID, ev.SimTime,
			ev.Position.X, ev.Position.Y, ev.Position.Z, now,
		); err != nil {
			return fmt.Errorf("写入击杀记录失败: %w", err)
		}
	}

	return tx.Commit()
}

// RecentKills 查询房间最近的击杀记录
func (l *CombatLog) RecentKills(ctx context.Context, roomID string, limit int) ([]KillRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT room_id, skeleton_id, ability, projectile_id, sim_time_ms, pos_x, pos_y, pos_z, recorded_at
		FROM combat_log
		WHERE room_id = $1
		ORDER BY id DESC
		LIMIT $2`, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []KillRecord
	for rows.Next() {
		var r KillRecord
		var ability string
		if err := rows.Scan(
			&r.RoomID, &r.SkeletonID, &ability, &r.ProjectileID, &r.SimTime,
			&r.Position.X, &r.Position.Y, &r.Position.Z, &r.RecordedAt,
		); err != nil {
			return nil, err
		}
		r.Ability = AbilityID(ability)
		records = append(records, r)
	}
	return records, rows.Err()
}

// AbilityKills 从 ability_kills 视图读取各技能累计击杀数
func (l *CombatLog) AbilityKills(ctx context.Context) (map[AbilityID]int64, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT ability, kills FROM ability_kills`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[AbilityID]int64)
	for rows.Next() {
		var ability string
		var kills int64
		if err := rows.Scan(&ability, &kills); err != nil {
			return nil, err
		}
		out[AbilityID(ability)] = kills
	}
	return out, rows.Err()
}
