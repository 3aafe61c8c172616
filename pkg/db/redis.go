package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/sirupsen/logrus"
)

// OpenRedis 创建Redis客户端并测试连通性
func OpenRedis(ctx context.Context, cfg config.RedisConfig, log *logrus.Entry) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(pingCtx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.WithField("addr", cfg.GetRedisAddr()).Info("成功连接到Redis服务器")
	return client, nil
}

// CloseRedis 关闭Redis连接
func CloseRedis(client *redis.Client, log *logrus.Entry) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.WithError(err).Warn("关闭Redis连接时发生错误")
		return
	}
	log.Info("Redis连接已关闭")
}
