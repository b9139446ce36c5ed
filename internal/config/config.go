package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config — настройки сервиса. Порядок: значения по умолчанию,
// затем YAML-файл (если задан), затем переменные окружения.
type Config struct {
	DB DBConfig `yaml:"db"`

	GRPCAddr                string `yaml:"grpc_addr"`
	AppTimezone             string `yaml:"app_timezone"`
	SweepCron               string `yaml:"sweep_cron"`
	DefaultFloristsRequired int    `yaml:"default_florists_required"`
	InvoiceOverdueDays      int    `yaml:"invoice_overdue_days"`
	LogLevel                string `yaml:"log_level"`

	location *time.Location
}

func Default() *Config {
	return &Config{
		DB:                      defaultDBConfig(),
		GRPCAddr:                ":50051",
		AppTimezone:             "Europe/Paris",
		SweepCron:               "5 0 * * *",
		DefaultFloristsRequired: 2,
		InvoiceOverdueDays:      30,
		LogLevel:                "info",
	}
}

// Load читает .env (если есть), YAML-файл path (если задан; иначе FLORIST_CONFIG)
// и переменные окружения.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("FLORIST_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDBConfig — только часть про БД.
func LoadDBConfig(path string) (*DBConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &cfg.DB, nil
}

func (c *Config) applyEnv() {
	c.DB.applyEnv()
	c.GRPCAddr = getEnv("GRPC_ADDR", c.GRPCAddr)
	c.AppTimezone = getEnv("APP_TIMEZONE", c.AppTimezone)
	c.SweepCron = getEnv("SWEEP_CRON", c.SweepCron)
	c.DefaultFloristsRequired = getEnvInt("DEFAULT_FLORISTS_REQUIRED", c.DefaultFloristsRequired)
	c.InvoiceOverdueDays = getEnvInt("INVOICE_OVERDUE_DAYS", c.InvoiceOverdueDays)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

func (c *Config) validate() error {
	if err := c.DB.validate(); err != nil {
		return err
	}

	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.AppTimezone, err)
	}
	c.location = loc

	if c.SweepCron != "" {
		if _, err := cron.ParseStandard(c.SweepCron); err != nil {
			return fmt.Errorf("invalid SWEEP_CRON %q: %w", c.SweepCron, err)
		}
	}
	if c.DefaultFloristsRequired <= 0 {
		return fmt.Errorf("DEFAULT_FLORISTS_REQUIRED must be positive, got %d", c.DefaultFloristsRequired)
	}
	if c.InvoiceOverdueDays <= 0 {
		return fmt.Errorf("INVOICE_OVERDUE_DAYS must be positive, got %d", c.InvoiceOverdueDays)
	}
	return nil
}

// Location — часовой пояс, в котором определяется «сегодня».
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
