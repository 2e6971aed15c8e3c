package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8080/api"`
		Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
	} `yaml:"api"`
	HTTP struct {
		Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":8081"`
	} `yaml:"http"`
	Mock struct {
		Addr string `yaml:"addr" env:"MOCK_ADDR" env-default:":8080"`
	} `yaml:"mock"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	} `yaml:"log"`
	Flash struct {
		Secret string `yaml:"secret" env:"FLASH_SECRET" env-default:"orderdesk-dev-secret"`
		Secure bool   `yaml:"secure" env:"FLASH_SECURE" env-default:"false"`
	} `yaml:"flash"`
}

// Load читает .env (если есть), затем YAML-файл и переменные окружения.
// Переменные окружения перекрывают файл.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("read config: API_TIMEOUT must be positive, got %s", cfg.API.Timeout)
	}
	return &cfg, nil
}

// SlogLevel уровень логирования; неизвестное значение -> info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
