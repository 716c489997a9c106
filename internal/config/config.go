// Package config собирает настройки сервиса из .env, переменных окружения и значений по умолчанию.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageInMemory = "in-memory"
	StoragePostgres = "postgres"
)

type HTTP struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Storage struct {
	Type        string
	DatabaseURL string
	Seed        bool
}

// Cache - кэш списков в Redis. Пустой RedisURL отключает кэш.
type Cache struct {
	RedisURL string
	TTL      time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	HTTP    HTTP
	Storage Storage
	Cache   Cache
	Log     Log
}

// Addr возвращает адрес для http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageInMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("storage.database_url is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	return nil
}

// ключ viper -> переменная окружения
var envKeys = map[string]string{
	"http.port":            "PORT",
	"http.read_timeout":    "HTTP_READ_TIMEOUT",
	"http.write_timeout":   "HTTP_WRITE_TIMEOUT",
	"http.idle_timeout":    "HTTP_IDLE_TIMEOUT",
	"storage.type":         "STORAGE",
	"storage.database_url": "DATABASE_URL",
	"storage.seed":         "STORAGE_SEED",
	"cache.redis_url":      "REDIS_URL",
	"cache.ttl":            "CACHE_TTL",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("storage.type", StorageInMemory)
	v.SetDefault("storage.database_url", "")
	v.SetDefault("storage.seed", false)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load читает envFile (если он есть) и окружение. Отсутствующий файл не ошибка.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{
			Port:         v.GetInt("http.port"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Storage: Storage{
			Type:        v.GetString("storage.type"),
			DatabaseURL: v.GetString("storage.database_url"),
			Seed:        v.GetBool("storage.seed"),
		},
		Cache: Cache{
			RedisURL: v.GetString("cache.redis_url"),
			TTL:      v.GetDuration("cache.ttl"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	return cfg, nil
}
