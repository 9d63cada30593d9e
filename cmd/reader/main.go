package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/reader"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/service"
	"github.com/Nagatani/simple-attendance-with-pasori/pkg/database"
	applogger "github.com/Nagatani/simple-attendance-with-pasori/pkg/logger"
)

// 対話モードの出席登録ループ。
// カードを1枚ずつ処理し、未知のカードは学籍番号の手入力を待ってから登録する。
// 次のカードは前のカードの処理（入力待ち含む）が終わるまで受け付けない。
func main() {
	configPath := flag.String("config", "", "設定ファイルのパス")
	sessionID := flag.Int("session", 0, "講義回（第何回か）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗しました: %v\n", err)
		os.Exit(1)
	}
	if *sessionID != 0 {
		cfg.Session.ID = *sessionID
	}
	if cfg.Session.ID <= 0 {
		fmt.Fprintln(os.Stderr, "講義回を -session で指定してください。")
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
	svc := service.NewService(cfg, repo, logger)

	console := reader.NewConsole(os.Stdin, os.Stdout)
	if err := run(cfg.Session.ID, svc, console, logger); err != nil {
		logger.Fatal("出席登録ループが異常終了しました", zap.Error(err))
	}
}

// run 入力が尽きるまでカードを処理する
func run(sessionID int, svc *service.Service, console *reader.Console, logger *zap.Logger) error {
	ctx := context.Background()

	fmt.Println("カードリーダーに学生証を近づけてください")

	for {
		cardID, err := console.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := handleCard(ctx, sessionID, cardID, svc, console, logger); err != nil {
			return err
		}
	}
}

// handleCard カード1枚分の処理。未知のカードは学籍番号を手入力させてから登録する
func handleCard(ctx context.Context, sessionID int, cardID string, svc *service.Service, console *reader.Console, logger *zap.Logger) error {
	result, err := svc.Attendance.Tap(ctx, sessionID, cardID)
	if err != nil {
		return err
	}

	if result.Status == service.TapNeedsRegistration {
		studentID, err := console.Prompt("学生証のバーコードを読み取るか、学籍番号を入力してください。")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("学籍番号の入力中に入力が終了しました")
			}
			return err
		}

		if err := svc.Registry.Register(ctx, cardID, studentID); err != nil {
			return err
		}

		// 登録後にもう一度読み取り処理を通して出席を記録する
		result, err = svc.Attendance.Tap(ctx, sessionID, cardID)
		if err != nil {
			return err
		}
	}

	switch result.Status {
	case service.TapRecorded:
		fmt.Printf("出席登録: %s\n", result.StudentID)
	case service.TapAlreadyRecorded:
		fmt.Printf("出席登録済み: %s\n", result.StudentID)
	default:
		logger.Warn("想定外の読み取り結果", zap.String("status", string(result.Status)), zap.String("card_id", cardID))
	}
	return nil
}
