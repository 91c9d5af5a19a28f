// Package config 應用程式設定，來源為 YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackyeh168/workspace_hub/src/internal/infrastructure/observability"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config 應用程式設定
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Store    StoreConfig    `yaml:"store"`
	Metrics  ToggleConfig   `yaml:"metrics"`
	Tracing  ToggleConfig   `yaml:"tracing"`
	Database DatabaseConfig `yaml:"database"`
	Archive  ToggleConfig   `yaml:"archive"`
	Relay    RelayConfig    `yaml:"relay"`
}

// LoggingConfig 日誌等級與格式（text / json）
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig 事件日誌設定
type StoreConfig struct {
	ValidateCausation bool `yaml:"validate_causation"`
}

// ToggleConfig 只有開關的元件
type ToggleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DatabaseConfig SQLite 連線字串
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RelayConfig Redis 轉送設定
type RelayConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RedisAddr     string `yaml:"redis_addr"`
	ChannelPrefix string `yaml:"channel_prefix"`
}

// Default 預設設定
func Default() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info", Format: observability.FormatText},
		Metrics:  ToggleConfig{Enabled: true},
		Tracing:  ToggleConfig{Enabled: true},
		Database: DatabaseConfig{DSN: "file:workspace_hub?mode=memory&cache=shared"},
		Archive:  ToggleConfig{Enabled: true},
		Relay: RelayConfig{
			RedisAddr:     "localhost:6379",
			ChannelPrefix: "workspace-events:",
		},
	}
}

// FromYAML 以預設值為底解析 YAML，未出現的鍵保留預設
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromFile 讀取 .yaml / .yml 設定檔
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return FromYAML(data)
}

// Validate 檢查設定，返回所有問題
func (c Config) Validate() error {
	var errs []error

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case observability.FormatText, observability.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format: unsupported %q", c.Logging.Format))
	}
	if c.Archive.Enabled && strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn: required when archive is enabled"))
	}
	if c.Relay.Enabled && strings.TrimSpace(c.Relay.RedisAddr) == "" {
		errs = append(errs, errors.New("relay.redis_addr: required when relay is enabled"))
	}

	return errors.Join(errs...)
}
