package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServiceName 健康检查和问候接口中返回的服务名
const ServiceName = "openzoa.com"

// Config 应用配置
type Config struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL"     envDefault:"gemini-2.5-flash"`
	GeminiBaseURL   string        `env:"GEMINI_BASE_URL"  envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"120s"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
}

// Load 加载 .env 文件（如果存在）后从环境变量解析配置。
// .env 不存在时记一条日志并直接使用进程环境变量；文件存在但格式错误时返回错误
func Load(log *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		log.Info("No .env file found, using environment variables")
	}

	return Parse()
}

// Parse 只从进程环境变量解析配置
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.GeminiBaseURL = strings.TrimRight(cfg.GeminiBaseURL, "/")

	if cfg.UpstreamTimeout < 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must not be negative, got %s", cfg.UpstreamTimeout)
	}

	return &cfg, nil
}

// HasGeminiKey 是否配置了上游 API key
func (c *Config) HasGeminiKey() bool {
	return c.GeminiAPIKey != ""
}

// SlogLevel 将 LOG_LEVEL 转换为 slog.Level，无法识别时回退到 Info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
