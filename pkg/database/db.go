package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
)

// NewDB SQLite データベース接続を初期化する
// ストレージはプロセス起動時に開き、終了時に閉じる（リクエスト間で暗黙の共有状態を持たない）
func NewDB(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗しました: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("下層の sql.DB 取得に失敗しました: %w", err)
	}

	// SQLite は単一ライターなので接続数は絞る（デフォルト 1）
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("データベース ping に失敗しました: %w", err)
	}

	logger.Info("データベース接続に成功しました", zap.String("path", cfg.Path))

	return db, nil
}
