package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`

	// OperatorIDs telegram ID сотрудников, которым доступна консоль
	OperatorIDs []int64 `mapstructure:"OPERATOR_IDS"`

	// Location часовой пояс агентства, в нём считаются недели и месяцы
	Location *time.Location `mapstructure:"TIMEZONE"`

	ReconcileHour          int           `mapstructure:"RECONCILE_HOUR"`
	ReconcileCheckInterval time.Duration `mapstructure:"RECONCILE_CHECK_INTERVAL"`

	MetricsAddr string `mapstructure:"METRICS_ADDR"`

	// RedisAddr пустой адрес означает локальную блокировку сверки
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	CountAdvanceAbsences bool `mapstructure:"COUNT_ADVANCE_ABSENCES"`
	MigrationsEnabled    bool `mapstructure:"MIGRATIONS_ENABLED"`
}

const (
	defaultTimezone               = "Europe/Moscow"
	defaultReconcileHour          = 3
	defaultReconcileCheckInterval = time.Minute
	defaultMetricsAddr            = ":9090"
)

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// FromLookup собирает конфигурацию из произвольного источника переменных
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		DBDSN:         get("DB_DSN"),
		TelegramToken: get("TELEGRAM_TOKEN"),
		Environment:   get("ENV"),
		MetricsAddr:   get("METRICS_ADDR"),
		RedisAddr:     get("REDIS_ADDR"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = defaultMetricsAddr
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	ids, err := parseIDs(get("OPERATOR_IDS"))
	if err != nil {
		return nil, fmt.Errorf("OPERATOR_IDS: %w", err)
	}
	cfg.OperatorIDs = ids

	tz := get("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}

	cfg.ReconcileHour = defaultReconcileHour
	if v := get("RECONCILE_HOUR"); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("RECONCILE_HOUR must be an hour 0-23, got %q", v)
		}
		cfg.ReconcileHour = hour
	}

	cfg.ReconcileCheckInterval = defaultReconcileCheckInterval
	if v := get("RECONCILE_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("RECONCILE_CHECK_INTERVAL must be a positive duration, got %q", v)
		}
		cfg.ReconcileCheckInterval = d
	}

	if cfg.CountAdvanceAbsences, err = parseBool(get("COUNT_ADVANCE_ABSENCES"), false); err != nil {
		return nil, fmt.Errorf("COUNT_ADVANCE_ABSENCES: %w", err)
	}
	if cfg.MigrationsEnabled, err = parseBool(get("MIGRATIONS_ENABLED"), true); err != nil {
		return nil, fmt.Errorf("MIGRATIONS_ENABLED: %w", err)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsOperator проверяет, входит ли пользователь в список операторов
func (c *Config) IsOperator(telegramID int64) bool {
	for _, id := range c.OperatorIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func parseIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseBool(raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}
