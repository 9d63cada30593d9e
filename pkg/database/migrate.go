package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations データベースマイグレーションを実行する
// 現在のバージョンを検出し、未適用のマイグレーションをすべて適用する
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("マイグレーションファイルの読み込みに失敗しました: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("マイグレーションドライバの作成に失敗しました: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("マイグレーションインスタンスの初期化に失敗しました: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("マイグレーションの実行に失敗しました: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("マイグレーションが dirty 状態です", zap.Uint("version", version))
	} else {
		logger.Info("マイグレーション完了", zap.Uint("version", version))
	}

	return nil
}
