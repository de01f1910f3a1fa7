// internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"space/internal/logger"
)

// Config 服务配置
type Config struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DBPath          string        `yaml:"db_path"`
	LogLevel        string        `yaml:"log_level"`
	ReshuffleDelay  time.Duration `yaml:"reshuffle_delay"`
	MonitorInterval time.Duration `yaml:"monitor_interval"`
	CORSOrigin      string        `yaml:"cors_origin"`
}

// Default 默认配置
func Default() Config {
	return Config{
		Port:            8080,
		DBPath:          "space.db",
		LogLevel:        "info",
		ReshuffleDelay:  100 * time.Millisecond,
		MonitorInterval: 5 * time.Second,
		CORSOrigin:      "*",
	}
}

// Load 依次读取默认值、YAML 文件、.env 和环境变量。path 为空时跳过 YAML
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("SPACE_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := os.LookupEnv("SPACE_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SPACE_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v, ok := os.LookupEnv("SPACE_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("SPACE_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("SPACE_RESHUFFLE_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SPACE_RESHUFFLE_DELAY %q: %w", v, err)
		}
		cfg.ReshuffleDelay = d
	}
	if v, ok := os.LookupEnv("SPACE_MONITOR_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SPACE_MONITOR_INTERVAL %q: %w", v, err)
		}
		cfg.MonitorInterval = d
	}
	if v, ok := os.LookupEnv("SPACE_CORS_ORIGIN"); ok {
		cfg.CORSOrigin = v
	}
	return nil
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("db path is empty")
	}
	if c.ReshuffleDelay < 0 {
		return fmt.Errorf("invalid reshuffle delay %v", c.ReshuffleDelay)
	}
	if c.MonitorInterval <= 0 {
		return fmt.Errorf("invalid monitor interval %v", c.MonitorInterval)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Addr 监听地址
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
