// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Engine    EngineConfig
	Planner   PlannerConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string
}

// RedisConfig holds the optional snapshot notifier configuration.
type RedisConfig struct {
	URL     string
	Channel string
	Enabled bool
}

// EngineConfig holds goal progress engine tunables.
type EngineConfig struct {
	HistoryCapacity int
}

// PlannerConfig holds planner aggregation tunables.
type PlannerConfig struct {
	AtRiskPercentThreshold  float64
	DeadlineHorizonDays     int
	DailyFocusTargetMinutes int
}

// SchedulerConfig holds the safety-net recompute schedule.
type SchedulerConfig struct {
	Enabled       bool
	RecomputeCron string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "127.0.0.1"),
			Port:         getEnvAsInt("SERVER_PORT", 8090),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "planner.db"),
		},
		Redis: RedisConfig{
			URL:     getEnv("REDIS_URL", ""),
			Channel: getEnv("REDIS_SNAPSHOT_CHANNEL", "planner.snapshot.changed"),
			Enabled: getEnv("REDIS_URL", "") != "",
		},
		Engine: EngineConfig{
			HistoryCapacity: getEnvAsInt("ENGINE_HISTORY_CAPACITY", 256),
		},
		Planner: PlannerConfig{
			AtRiskPercentThreshold:  getEnvAsFloat("PLANNER_AT_RISK_THRESHOLD", 0.30),
			DeadlineHorizonDays:     getEnvAsInt("PLANNER_DEADLINE_HORIZON_DAYS", 7),
			DailyFocusTargetMinutes: getEnvAsInt("PLANNER_DAILY_FOCUS_TARGET_MINUTES", 120),
		},
		Scheduler: SchedulerConfig{
			Enabled:       getEnvAsBool("SCHEDULER_ENABLED", true),
			RecomputeCron: getEnv("SCHEDULER_RECOMPUTE_CRON", "*/15 * * * *"),
		},
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
