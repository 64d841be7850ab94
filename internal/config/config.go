// Package config reads service settings from the environment and the optional
// analyzer tuning file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"call-insights/internal/db"
	"call-insights/internal/repositories"
)

// Config holds the settings read at server startup
type Config struct {
	Addr               string
	DatabaseURL        string
	RunMigrations      bool
	EvaluationsFile    string
	Redis              db.RedisConfig
	RedisEnabled       bool
	ReportCacheTTL     time.Duration
	WarmerInterval     time.Duration
	WarmerWindowDays   int
	WarmerClients      []string
	AnalyzerConfigFile string
}

// Load reads the configuration from environment variables
func Load() Config {
	return Config{
		Addr:               getEnv("SERVER_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		EvaluationsFile:    os.Getenv("EVALUATIONS_FILE"),
		Redis:              getRedisConfig(),
		RedisEnabled:       getEnvBool("REDIS_ENABLED", true),
		ReportCacheTTL:     getEnvDuration("REPORT_CACHE_TTL", repositories.DefaultReportTTL),
		WarmerInterval:     getEnvDuration("WARMER_INTERVAL", 10*time.Minute),
		WarmerWindowDays:   getEnvInt("WARMER_WINDOW_DAYS", 7),
		WarmerClients:      getEnvList("WARMER_CLIENTS"),
		AnalyzerConfigFile: os.Getenv("ANALYZER_CONFIG_FILE"),
	}
}

// getRedisConfig reads Redis configuration from environment variables
func getRedisConfig() db.RedisConfig {
	config := db.DefaultRedisConfig()

	if host := os.Getenv("REDIS_HOST"); host != "" {
		config.Host = host
	}
	config.Port = getEnvInt("REDIS_PORT", config.Port)
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Password = password
	}
	config.DB = getEnvInt("REDIS_DB", config.DB)
	config.PoolSize = getEnvInt("REDIS_POOL_SIZE", config.PoolSize)

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
