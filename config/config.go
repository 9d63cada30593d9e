package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// 登録重複ポリシー（register.duplicate_policy）
const (
	// PolicyInsert 既存マッピングがあればストレージエラー（UNIQUE 制約違反）。旧実装と同じ挙動。
	PolicyInsert = "insert"
	// PolicyIgnore 既存マッピングがあれば何もしない（insert-or-ignore）。
	PolicyIgnore = "ignore"
	// PolicyReplace 既存マッピングの student_id を上書きする（insert-or-replace）。
	PolicyReplace = "replace"
)

// Config アプリ全体の設定
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Session  SessionConfig  `mapstructure:"session"`
	Register RegisterConfig `mapstructure:"register"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP サーバー設定
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig クロスオリジン設定
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig SQLite データベース設定
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
	MaxOpenConns  int    `mapstructure:"max_open_conns"`
}

// DSN SQLite 接続文字列を生成する
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d", c.Path, c.BusyTimeoutMS)
}

// SessionConfig 講義回の設定（1プロセス1講義回）
type SessionConfig struct {
	ID    int    `mapstructure:"id"`
	Title string `mapstructure:"title"`
}

// RegisterConfig カード登録の挙動設定
type RegisterConfig struct {
	DuplicatePolicy string `mapstructure:"duplicate_policy"`
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 設定ファイルと環境変数から設定を読み込む
// 優先度: 環境変数 > 設定ファイル > デフォルト値
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── デフォルト値 ──
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5000"})

	v.SetDefault("db.path", "attend.db")
	v.SetDefault("db.busy_timeout_ms", 5000)
	v.SetDefault("db.max_open_conns", 1)

	v.SetDefault("session.id", 0)
	v.SetDefault("session.title", "")

	v.SetDefault("register.duplicate_policy", PolicyInsert)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 設定ファイル ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 環境変数 ──
	v.SetEnvPrefix("ATTEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
		// 設定ファイルがない場合はデフォルト値と環境変数のみで動かす
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗しました: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 主要な設定項目を検証する
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("設定エラー: server.port は 1-65535 の範囲で指定してください")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("設定エラー: db.path を指定してください")
	}
	switch c.Register.DuplicatePolicy {
	case PolicyInsert, PolicyIgnore, PolicyReplace:
	default:
		return fmt.Errorf("設定エラー: register.duplicate_policy は insert / ignore / replace のいずれかを指定してください")
	}
	return nil
}
