// Package config предоставляет структуры и функции для загрузки конфигурации бота
// из переменных окружения (и, опционально, YAML-файла).
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Режимы удаления привязки.
const (
	UnlinkByUUID    = "uuid"
	UnlinkByDiscord = "discord"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Discord  `yaml:"discord"`
	LinkAPI  `yaml:"link_api"`
	Commerce `yaml:"commerce"`
	Sentry   `yaml:"sentry"`
	Ops      `yaml:"ops"`
}

// Discord настройки подключения к Discord.
type Discord struct {
	Token   string `yaml:"token" env:"DISCORD_TOKEN" env-required:"true"`
	GuildID string `yaml:"guild_id" env:"DISCORD_GUILD_ID"` // пусто — команды регистрируются глобально
}

// LinkAPI настройки link-сервиса.
type LinkAPI struct {
	URL        string `yaml:"url" env:"LINK_API_URL" env-required:"true"`
	Token      string `yaml:"token" env:"LINK_API_TOKEN" env-required:"true"`
	UnlinkMode string `yaml:"unlink_mode" env:"LINK_UNLINK_MODE" env-default:"uuid"`
}

// Commerce настройки API GmodStore.
type Commerce struct {
	URL       string  `yaml:"url" env:"GMS_API_URL" env-default:"https://www.gmodstore.com/api/v3"`
	Token     string  `yaml:"token" env:"GMS_PAT" env-required:"true"`
	RateLimit float64 `yaml:"rate_limit" env:"COMMERCE_RATE_LIMIT" env-default:"0"` // запросов в секунду, 0 — без ограничения
}

// Sentry настройки отправки ошибок.
type Sentry struct {
	DSN string `yaml:"dsn" env:"SENTRY_DSN"`
}

// Ops настройки служебного HTTP-сервера (/metrics, /health).
type Ops struct {
	Address string `yaml:"address" env:"OPS_ADDRESS" env-default:":9090"`
}

// Load читает .env (если есть), затем YAML-файл из CONFIG_PATH (если задан)
// и переменные окружения. Возвращает ошибку при отсутствии обязательных значений.
func Load() (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: read .env: %w", op, err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if strings.HasSuffix(c.LinkAPI.URL, "/") {
		return errors.New("LINK_API_URL must not end with a slash")
	}
	if strings.HasSuffix(c.Commerce.URL, "/") {
		return errors.New("GMS_API_URL must not end with a slash")
	}
	switch c.UnlinkMode {
	case UnlinkByUUID, UnlinkByDiscord:
	default:
		return fmt.Errorf("LINK_UNLINK_MODE must be %q or %q, got %q", UnlinkByUUID, UnlinkByDiscord, c.UnlinkMode)
	}
	if c.RateLimit < 0 {
		return errors.New("COMMERCE_RATE_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"LogLevel: %s\n"+
			"Discord:\n"+
			"  GuildID: %s\n"+
			"LinkAPI:\n"+
			"  URL: %s\n"+
			"  UnlinkMode: %s\n"+
			"Commerce:\n"+
			"  URL: %s\n"+
			"  RateLimit: %g\n"+
			"Ops:\n"+
			"  Address: %s\n",
		c.Env,
		c.LogLevel,
		c.GuildID,
		c.LinkAPI.URL,
		c.UnlinkMode,
		c.Commerce.URL,
		c.RateLimit,
		c.Ops.Address,
	)
}
