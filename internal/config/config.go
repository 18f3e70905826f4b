package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	CalendarSync CalendarSyncConfig `toml:"calendar_sync"`
	Scheduling   SchedulingConfig   `toml:"scheduling"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig prometheus метрики
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig проверка личности вызывающего
// Если JWTSecret задан, требуется Bearer токен (HS256, идентификатор в claim sub).
// Иначе доверяем заголовку X-User-ID, который проставляет шлюз.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
}

// CalendarSyncConfig синхронизация подтверждённых бронирований с внешним календарём
type CalendarSyncConfig struct {
	Enabled   bool   `toml:"enabled"`
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды на одну попытку
	QueueSize int    `toml:"queue_size"`
	Workers   int    `toml:"workers"`
}

// SchedulingConfig параметры расписания
type SchedulingConfig struct {
	Timezone     string `toml:"timezone"`
	TxMaxRetries int    `toml:"tx_max_retries"`
}

// Location часовой пояс, в котором трактуются даты и время слотов
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Load читает .env (если есть), TOML файл и переменные окружения
// Приоритет: переменные окружения > файл > значения по умолчанию
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Logs.File, "LOG_FILE")
	setString(&c.Auth.JWTSecret, "AUTH_JWT_SECRET")
	setString(&c.CalendarSync.URL, "CALENDAR_SYNC_URL")
	setString(&c.Scheduling.Timezone, "SCHEDULING_TIMEZONE")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	defaultInt(&c.Server.HTTPPort, 8080)
	defaultInt(&c.Server.ReadTimeout, 10)
	defaultInt(&c.Server.WriteTimeout, 10)
	defaultInt(&c.Server.IdleTimeout, 60)
	defaultInt(&c.Server.ShutdownTimeout, 15)

	defaultInt(&c.Database.Port, 5432)
	defaultString(&c.Database.SSLMode, "disable")
	defaultInt(&c.Database.MaxOpenConns, 25)
	defaultInt(&c.Database.MaxIdleConns, 5)
	defaultInt(&c.Database.ConnMaxLifetime, 300)

	defaultString(&c.Logs.Level, "info")

	defaultString(&c.Metrics.Path, "/metrics")
	defaultString(&c.Metrics.ServiceName, "neighborly-booking")

	defaultInt(&c.CalendarSync.Timeout, 5)
	defaultInt(&c.CalendarSync.QueueSize, 100)
	defaultInt(&c.CalendarSync.Workers, 2)

	defaultString(&c.Scheduling.Timezone, "Asia/Kolkata")
	defaultInt(&c.Scheduling.TxMaxRetries, 3)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host, user and dbname are required", ErrInvalidConfig)
	}
	if c.CalendarSync.Enabled && c.CalendarSync.URL == "" {
		return fmt.Errorf("%w: calendar_sync.url is required when sync is enabled", ErrInvalidConfig)
	}
	if c.Scheduling.TxMaxRetries < 0 {
		return fmt.Errorf("%w: scheduling.tx_max_retries must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
	}
	*dst = n
	return nil
}

func defaultInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func defaultString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
