package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`

	MaxOpenConns    int `toml:"max_open_conns"`
	MaxIdleConns    int `toml:"max_idle_conns"`
	ConnMaxLifetime int `toml:"conn_max_lifetime"` // секунды

	// LockTimeoutMillis ограничивает ожидание блокировки строки лимита при допуске
	// По истечении PostgreSQL возвращает 55P03, которую клиенту отдаем как таймаут допуска
	LockTimeoutMillis int `toml:"lock_timeout_millis"`
}

// DSN возвращает строку подключения PostgreSQL
func (d *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	if d.LockTimeoutMillis > 0 {
		dsn += fmt.Sprintf(" options='-c lock_timeout=%d'", d.LockTimeoutMillis)
	}
	return dsn
}

// RedisConfig настройки кеша слотов
// Кеш опционален: при Enabled = false сервис работает напрямую из БД
type RedisConfig struct {
	Enabled             bool   `toml:"enabled"`
	Addr                string `toml:"addr"`
	Password            string `toml:"password"`
	DB                  int    `toml:"db"`
	SlotCacheTTLSeconds int    `toml:"slot_cache_ttl_seconds"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig пороги генератора слотов
type BookingConfig struct {
	// LimitedThresholdPercent процент остатка, ниже которого слот помечается "limited"
	LimitedThresholdPercent int `toml:"limited_threshold_percent"`
	// LimitedAbsoluteSpots абсолютный остаток, при котором слот помечается "limited"
	LimitedAbsoluteSpots int `toml:"limited_absolute_spots"`
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		return nil, fmt.Errorf("config: server.http_port is required")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.host and database.dbname are required")
	}
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("config: redis.addr is required when redis is enabled")
	}

	return &cfg, nil
}
