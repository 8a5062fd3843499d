// Package config загружает конфигурацию сервиса из TOML-файла
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var (
	// ErrLoad возвращается при ошибке чтения файла конфигурации
	ErrLoad = errors.New("config: failed to load")

	// ErrValidate возвращается при некорректных значениях конфигурации
	ErrValidate = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server          Server          `toml:"server"`
	Database        Database        `toml:"database"`
	Logs            Logs            `toml:"logs"`
	Metrics         Metrics         `toml:"metrics"`
	FacilityService FacilityService `toml:"facility_service"`
	Notifier        Notifier        `toml:"notifier"`
}

// Server настройки HTTP-сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки подключения к postgres
type Database struct {
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

// DSN собирает строку подключения lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// FacilityService настройки клиента сервиса управления объектами
type FacilityService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Notifier настройки канала уведомлений об изменениях бронирований
type Notifier struct {
	BufferSize    int    `toml:"buffer_size"`    // размер буфера подписчика
	RedisEnabled  bool   `toml:"redis_enabled"`  // межэкземплярная рассылка через redis pub/sub
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisChannel  string `toml:"redis_channel"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: Logs{
			Level: "info",
		},
		Metrics: Metrics{
			Path:        "/metrics",
			ServiceName: "facility-booking",
		},
		FacilityService: FacilityService{
			Timeout: 5,
		},
		Notifier: Notifier{
			BufferSize:   16,
			RedisChannel: "facility-booking.changes",
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrValidate, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrValidate)
	}
	if c.FacilityService.URL == "" {
		return fmt.Errorf("%w: facility_service.url is required", ErrValidate)
	}
	if c.Notifier.BufferSize <= 0 {
		return fmt.Errorf("%w: notifier.buffer_size must be positive", ErrValidate)
	}
	if c.Notifier.RedisEnabled && c.Notifier.RedisAddr == "" {
		return fmt.Errorf("%w: notifier.redis_addr is required when redis is enabled", ErrValidate)
	}
	return nil
}
