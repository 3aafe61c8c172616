package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// OpenPostgres 打开PostgreSQL连接并测试连通性
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig, log *logrus.Entry) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("数据库Ping失败: %w", err)
	}

	log.WithField("host", cfg.Host).Info("成功连接到PostgreSQL数据库")
	return conn, nil
}

// ClosePostgres 关闭数据库连接
func ClosePostgres(conn *sql.DB, log *logrus.Entry) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		log.WithError(err).Warn("关闭数据库连接时发生错误")
		return
	}
	log.Info("数据库连接已关闭")
}
