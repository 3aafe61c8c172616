// schema.go

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateAllTablesSQL 创建所有表的SQL语句
const CreateAllTablesSQL = `
-- 击杀日志表
CREATE TABLE IF NOT EXISTS combat_log (
    id BIGSERIAL PRIMARY KEY,
    room_id VARCHAR(50) NOT NULL,
    skeleton_id VARCHAR(50) NOT NULL,
    ability VARCHAR(20) NOT NULL,
    projectile_id VARCHAR(50) NOT NULL,
    sim_time_ms BIGINT NOT NULL,
    pos_x DOUBLE PRECISION NOT NULL,
    pos_y DOUBLE PRECISION NOT NULL,
    pos_z DOUBLE PRECISION NOT NULL,
    recorded_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

-- 按技能汇总的击杀视图
CREATE OR REPLACE VIEW ability_kills AS
SELECT ability, COUNT(*) AS kills
FROM combat_log
GROUP BY ability;

CREATE INDEX IF NOT EXISTS idx_combat_log_room_id ON combat_log(room_id);
`

// DropAllTablesSQL 删除所有表和视图
const DropAllTablesSQL = `
DROP VIEW IF EXISTS ability_kills CASCADE;
DROP TABLE IF EXISTS combat_log CASCADE;
`

// InitAllTables 初始化所有数据库表
func InitAllTables(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, CreateAllTablesSQL); err != nil {
		return fmt.Errorf("创建数据库表失败: %w", err)
	}
	return nil
}

// DropAllTables 删除所有数据库表
func DropAllTables(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, DropAllTablesSQL); err != nil {
		return fmt.Errorf("删除数据库表失败: %w", err)
	}
	return nil
}
