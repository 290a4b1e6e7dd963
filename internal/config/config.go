// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"eneba-loot-goblin/internal/types"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// ErrMissingRequired - не задан обязательный параметр
var ErrMissingRequired = errors.New("required configuration is missing")

// Значения по умолчанию
const (
	DefaultMaxPrice    = "20"
	DefaultMaxOffers   = 3
	DefaultLanguage    = "el"
	DefaultMetricsJob  = "eneba_loot_goblin"
	localEnvFile       = ".env.local"
	defaultHTTPTimeout = 60
)

// RedisConfig конфигурация Redis (блокировка прогона)
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	LockTTL  time.Duration
}

// JournalConfig конфигурация журнала прогонов
type JournalConfig struct {
	Enabled bool
	Driver  string // postgres | sqlite
	DSN     string
}

// MetricsConfig конфигурация выгрузки метрик
type MetricsConfig struct {
	PushgatewayURL string
	Job            string
}

// Config - конфигурация приложения
type Config struct {
	FeedURL        string
	DiscordWebhook string

	Filter types.FilterConfig

	HTTPTimeout time.Duration

	// Logging
	LogLevel string
	LogFile  string
	Debug    bool

	Redis   RedisConfig
	Journal JournalConfig
	Metrics MetricsConfig
}

// LoadConfig загружает конфигурацию из .env файла и окружения.
// Уже заданные переменные окружения не перезаписываются.
func LoadConfig(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: Could not load %s file: %v", envPath, err)
		}
	}
	if _, err := os.Stat(localEnvFile); err == nil {
		log.Printf("Loading local env from %s...", localEnvFile)
		if err := godotenv.Load(localEnvFile); err != nil {
			log.Printf("Failed to load %s: %v", localEnvFile, err)
		}
	}

	return FromEnv()
}

// FromEnv собирает конфигурацию из текущего окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		FeedURL:        strings.TrimSpace(getEnvString("ENEBA_FEED_URL", "")),
		DiscordWebhook: strings.TrimSpace(getEnvString("DISCORD_WEBHOOK", "")),

		Filter: types.FilterConfig{
			MaxPrice:     getEnvPositiveDecimal("MAX_PRICE", decimal.RequireFromString(DefaultMaxPrice)),
			MaxOffers:    getEnvNonNegativeInt("MAX_OFFERS", DefaultMaxOffers),
			RegionPolicy: getEnvRegionPolicy("REGION_POLICY"),
			Language:     getEnvLanguage("NOTIFY_LANGUAGE"),
		},

		HTTPTimeout: time.Duration(getEnvPositiveInt("HTTP_TIMEOUT", defaultHTTPTimeout)) * time.Second,

		LogLevel: getEnvString("LOG_LEVEL", "info"),
		LogFile:  getEnvString("LOG_FILE", ""),
		Debug:    getEnvBool("DEBUG", false),

		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			LockTTL:  time.Duration(getEnvPositiveInt("RUN_LOCK_TTL", 600)) * time.Second,
		},

		Journal: JournalConfig{
			Enabled: getEnvBool("JOURNAL_ENABLED", false),
			Driver:  strings.ToLower(getEnvString("JOURNAL_DRIVER", "postgres")),
			DSN:     getEnvString("JOURNAL_DSN", ""),
		},

		Metrics: MetricsConfig{
			PushgatewayURL: getEnvString("METRICS_PUSHGATEWAY_URL", ""),
			Job:            getEnvString("METRICS_JOB", DefaultMetricsJob),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var missing []string
	if c.FeedURL == "" {
		missing = append(missing, "ENEBA_FEED_URL")
	}
	if c.DiscordWebhook == "" {
		missing = append(missing, "DISCORD_WEBHOOK")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	if c.Journal.Enabled {
		if c.Journal.Driver != "postgres" && c.Journal.Driver != "sqlite" {
			return fmt.Errorf("unsupported JOURNAL_DRIVER %q", c.Journal.Driver)
		}
		if c.Journal.DSN == "" {
			return fmt.Errorf("%w: JOURNAL_DSN", ErrMissingRequired)
		}
	}
	return nil
}

// RedisAddr возвращает адрес host:port
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Вспомогательные функции для парсинга переменных окружения
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvNonNegativeInt(key string, defaultValue int) int {
	if v := getEnvInt(key, defaultValue); v >= 0 {
		return v
	}
	return defaultValue
}

// getEnvPositiveInt - для таймаутов и TTL, где 0 означает "без ограничения"
func getEnvPositiveInt(key string, defaultValue int) int {
	if v := getEnvInt(key, defaultValue); v > 0 {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvPositiveDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value, exists := os.LookupEnv(key); exists {
		raw := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
		if d, err := decimal.NewFromString(raw); err == nil && d.IsPositive() {
			return d
		}
	}
	return defaultValue
}

func getEnvRegionPolicy(key string) types.RegionPolicy {
	value, exists := os.LookupEnv(key)
	if !exists {
		return types.RegionExcludeListed
	}
	policy, ok := types.ParseRegionPolicy(value)
	if !ok {
		log.Printf("Warning: unknown %s=%q, using %s", key, value, policy)
	}
	return policy
}

func getEnvLanguage(key string) string {
	switch lang := strings.ToLower(strings.TrimSpace(getEnvString(key, DefaultLanguage))); lang {
	case "el", "en":
		return lang
	default:
		return DefaultLanguage
	}
}
