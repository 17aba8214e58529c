package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// AppConfig carries the deploy-time settings the note pipeline depends on:
// the fixed content-encryption secret and the public base URL that share
// links are composed from. Loaded once in main and passed down explicitly.
type AppConfig struct {
	EncryptionKey string
	PublicBaseURL string
	Port          string
	RedisURL      string
}

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadAppConfig() AppConfig {
	key := os.Getenv("ENCRYPTION_KEY")
	if key == "" && os.Getenv("GO_ENV") != "test" {
		log.Fatal("ENCRYPTION_KEY is not set")
	}

	return AppConfig{
		EncryptionKey: key,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		Port:          getEnv("PORT", "8080"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
	}
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     getEnvUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     getEnvUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(getEnvInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    getEnv("MONGO_DB", "notes"),
		RetryWrites:     getEnvBool("MONGO_RETRY_WRITES", true),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultVal
}

func getEnvUint64(key string, defaultVal uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseUint(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultVal
}
