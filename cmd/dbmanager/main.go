// main.go

package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jacl-coder/PixelStorm-Skirmish/config"
	"github.com/jacl-coder/PixelStorm-Skirmish/internal/models"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/db"
	"github.com/jacl-coder/PixelStorm-Skirmish/pkg/logger"
)

func main() {
	// 解析命令行参数
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	action := flag.String("action", "help", "操作类型: reset, init, kills, leaderboard, help")
	roomID := flag.String("room", "", "kills 操作查询的房间ID")
	flag.Parse()

	log := logger.Component(logger.Init("info", "text"), "dbmanager")

	// 显示帮助信息
	if *action == "help" {
		showHelp()
		return
	}

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 初始化数据库连接
	conn, err := db.OpenPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatalf("初始化PostgreSQL失败: %v", err)
	}
	defer db.ClosePostgres(conn, log)

	// 执行操作
	switch *action {
	case "reset":
		log.Warn("正在重置数据库，这将删除所有战斗记录")
		if err := db.DropAllTables(ctx, conn); err != nil {
			log.Fatalf("重置数据库失败: %v", err)
		}
		log.Info("数据库重置完成")
	case "init":
		if err := db.InitAllTables(ctx, conn); err != nil {
			log.Fatalf("初始化数据库表失败: %v", err)
		}
		log.Info("数据库初始化完成")
	case "kills":
		if *roomID == "" {
			log.Fatal("kills 操作需要 -room 参数")
		}
		kills, err := models.NewCombatLog(conn).RecentKills(ctx, *roomID, 20)
		if err != nil {
			log.Fatalf("查询击杀记录失败: %v", err)
		}
		for _, k := range kills {
			log.WithFields(logrus.Fields{
				"skeleton": k.SkeletonID,
				"ability":  k.Ability,
				"sim_time": k.SimTime,
			}).Info("击杀")
		}
	case "leaderboard":
		byAbility, err := models.NewCombatLog(conn).AbilityKills(ctx)
		if err != nil {
			log.Fatalf("查询技能击杀统计失败: %v", err)
		}
		for ability, kills := range byAbility {
			log.WithFields(logrus.Fields{
				"ability": ability,
				"kills":   kills,
			}).Info("技能击杀")
		}
	default:
		log.Fatalf("未知操作: %s", *action)
	}
}

// showHelp 显示帮助信息
func showHelp() {
	logger.Log.Println("PixelStorm 数据库管理工具")
	logger.Log.Println("")
	logger.Log.Println("用法:")
	logger.Log.Println("  go run ./cmd/dbmanager -action=<操作> [-config=<配置文件>]")
	logger.Log.Println("")
	logger.Log.Println("操作:")
	logger.Log.Println("  reset        - 删除战斗记录表")
	logger.Log.Println("  init         - 创建战斗记录表")
	logger.Log.Println("  kills        - 查看房间最近的击杀记录 (需要 -room)")
	logger.Log.Println("  leaderboard  - 查看各技能累计击杀数")
	logger.Log.Println("  help         - 显示此帮助信息")
}
