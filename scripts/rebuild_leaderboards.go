// 手动全量重算排行榜脚本
//
// 排行榜平时在提交结束和查询时按需更新。此脚本用于罚时权重调整
// 或历史数据修复后，把所有挑战的排行榜重算一遍。
//
// 用法: go run scripts/rebuild_leaderboards.go

package main

import (
	"context"
	"log"
	"os"

	"code_arena_backend/internal/config"
	"code_arena_backend/internal/model"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/service"
	"code_arena_backend/pkg/database"
	"code_arena_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	challengeRepo := repository.NewChallengeRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)

	// Redis 不是必须的，脚本场景下跳过缓存
	svc := service.NewChallengeService(challengeRepo, questionRepo, progressRepo, leaderboardRepo, nil, logger.Log)

	var challenges []model.Challenge
	if err := db.Find(&challenges).Error; err != nil {
		log.Fatalf("读取挑战列表失败: %v", err)
	}

	ctx := context.Background()
	rebuilt, skipped := 0, 0
	for _, c := range challenges {
		if err := svc.RebuildLeaderboard(ctx, c.ID); err != nil {
			log.Printf("挑战 %d (%s) 跳过: %v", c.ID, c.Title, err)
			skipped++
			continue
		}
		rebuilt++
	}

	log.Printf("完成: 重算 %d 个, 跳过 %d 个", rebuilt, skipped)
}
