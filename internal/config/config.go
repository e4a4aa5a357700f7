package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	Backend     string
	DataFile    string
	PostgresDSN string
	HTTPAddr    string
	DeviceToken string
	SaveDelay   time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads the process configuration once. An invalid configuration panics.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		c, err := FromEnv()
		if err != nil {
			panic("Invalid config: " + err.Error())
		}
		cfg = c
	})
	return cfg
}

// FromEnv builds a Config from the current environment without caching it.
func FromEnv() (*Config, error) {
	delay, err := time.ParseDuration(getEnv("SAVE_DELAY", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("SAVE_DELAY: %w", err)
	}
	c := &Config{
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Backend:     getEnv("STORAGE_BACKEND", "file"),
		DataFile:    getEnv("DATA_FILE", "data/savecircle.json"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8088"),
		DeviceToken: getEnv("DEVICE_TOKEN", ""),
		SaveDelay:   delay,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "file":
		if c.DataFile == "" {
			return errors.New("file storage requires DATA_FILE to be set")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "memory":
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, memory, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.SaveDelay <= 0 {
		return errors.New("SAVE_DELAY must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
