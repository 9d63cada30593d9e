package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
	"github.com/Nagatani/simple-attendance-with-pasori/pkg/database"
	applogger "github.com/Nagatani/simple-attendance-with-pasori/pkg/logger"
)

// 出席記録を Excel ファイルへ書き出す。
// -session 0（デフォルト）で全講義回を1ファイル・講義回ごとのシートに、
// それ以外で指定講義回のみの1シートにする。
func main() {
	configPath := flag.String("config", "", "設定ファイルのパス")
	sessionID := flag.Int("session", service.AllSessions, "講義回（0 で全講義回）")
	output := flag.String("o", "", "出力ファイル名（省略時は自動）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗しました: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化に失敗しました: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("下層の sql.DB 取得に失敗しました", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	exportSvc := service.NewExportService(repo, logger)

	buf, filename, err := exportSvc.ExportAttendance(context.Background(), *sessionID)
	if err != nil {
		logger.Fatal("エクスポートに失敗しました", zap.Error(err))
	}

	if *output != "" {
		filename = *output
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		logger.Fatal("ファイルの書き込みに失敗しました", zap.String("filename", filename), zap.Error(err))
	}

	fmt.Printf("出力しました: %s\n", filename)
}
