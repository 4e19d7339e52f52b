// Package config loads application configuration from environment
// variables with defaults that work for a local run.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Countdown CountdownConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects the tracker store backend ("memory", "redis" or
// "postgres") and the single document key the aggregate lives under.
type StorageConfig struct {
	Backend    string
	StorageKey string
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CountdownConfig feeds the life-countdown display: the birthdate epoch and
// the lifespan horizon in years.
type CountdownConfig struct {
	BirthdateISO  string
	LifespanYears int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORE_BACKEND", "memory"),
			StorageKey: getEnv("STORAGE_KEY", "weekblocks:tracker"),
		},
		Database: DatabaseConfig{
			User:     getEnv("DB_USER", "weekblocks_user"),
			Password: getEnv("DB_PASSWORD", "secret"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "weekblocks_db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Countdown: CountdownConfig{
			BirthdateISO:  getEnv("BIRTHDATE", "1995-01-01"),
			LifespanYears: getEnvInt("LIFESPAN_YEARS", 80),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
