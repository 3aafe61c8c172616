// main.go

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/game"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/db"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/logger"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	tokenSubject := flag.String("token", "", "为指定主体签发连接令牌后退出")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.Fatalf("加载配置失败: %v", err)
	}

	log := logger.Init(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if cfg.Server.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if *tokenSubject != "" {
		token, err := game.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Required).Issue(*tokenSubject, cfg.Auth.TokenTTL)
		if err != nil {
			log.Fatalf("签发令牌失败: %v", err)
		}
		os.Stdout.WriteString(token + "\n")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startup := logger.Component(log, "main")
	var recorders game.MultiRecorder
	var leaderboard *models.RedisLeaderboard

	// 初始化数据库连接
	if cfg.Database.Enabled {
		conn, err := db.OpenPostgres(ctx, cfg.Database, startup)
		if err != nil {
			startup.Fatalf("初始化PostgreSQL失败: %v", err)
		}
		defer db.ClosePostgres(conn, startup)

		if err := db.InitAllTables(ctx, conn); err != nil {
			startup.Fatalf("初始化数据库表失败: %v", err)
		}
		recorders = append(recorders, models.NewCombatLog(conn))
	}

	// 初始化Redis连接
	if cfg.Redis.Enabled {
		client, err := db.OpenRedis(ctx, cfg.Redis, startup)
		if err != nil {
			startup.Fatalf("初始化Redis失败: %v", err)
		}
		defer db.CloseRedis(client, startup)

		leaderboard = models.NewRedisLeaderboard(client)
		recorders = append(recorders, leaderboard)
	}

	var recorder game.EventRecorder = game.NopRecorder{}
	if len(recorders) > 0 {
		recorder = recorders
	}

	server, err := game.NewGameServer(cfg, recorder, logger.Component(log, "game"))
	if err != nil {
		startup.Fatalf("创建游戏服务器失败: %v", err)
	}
	if leaderboard != nil {
		server.SetLeaderboard(leaderboard)
	}

	if err := server.Run(ctx); err != nil {
		startup.Errorf("游戏服务器异常退出: %v", err)
		return
	}

	startup.Info("服务器已安全关闭")
}
