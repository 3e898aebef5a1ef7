// Package config provides runtime configuration and the shared logger.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds server and database configuration read from the environment.
type Config struct {
	HTTPPort        string
	DatabaseURL     string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		HTTPPort:        getenv("APP_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT_SECONDS", 15),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(sec) * time.Second
}
