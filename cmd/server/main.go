package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/api/handler"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/api/router"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
	"github.com/Nagatani/simple-attendance-with-pasori/pkg/database"
	applogger "github.com/Nagatani/simple-attendance-with-pasori/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "設定ファイルのパス")
	sessionID := flag.Int("session", 0, "講義回（第何回か）")
	sessionTitle := flag.String("title", "", "講義タイトル")
	flag.Parse()

	// 1. 設定の読み込み
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗しました: %v\n", err)
		os.Exit(1)
	}

	// フラグは設定ファイルより優先する
	if *sessionID != 0 {
		cfg.Session.ID = *sessionID
	}
	if *sessionTitle != "" {
		cfg.Session.Title = *sessionTitle
	}
	if cfg.Session.ID <= 0 {
		fmt.Fprintln(os.Stderr, "講義回を -session で指定してください。")
		os.Exit(1)
	}

	// 2. ロガーの初期化
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化に失敗しました: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("起動します",
		zap.Int("port", cfg.Server.Port),
		zap.Int("session_id", cfg.Session.ID),
		zap.String("session_title", cfg.Session.Title),
	)

	// 3. データベース接続
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("下層の sql.DB 取得に失敗しました", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// 4. 依存の注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(cfg, svc)

	// 5. ルーターの初期化
	engine := router.Setup(cfg, h, logger)

	// 6. HTTP サーバーの起動（graceful shutdown 付き）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP サーバーを起動しました", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP サーバーが異常終了しました", zap.Error(err))
		}
	}()

	// 7. シグナルを待って graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("終了シグナルを受信しました", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("サーバーの終了に失敗しました", zap.Error(err))
	}

	// データベース接続を閉じる
	if closeDB, err := db.DB(); err == nil {
		closeDB.Close()
	}

	logger.Info("終了しました")
}
