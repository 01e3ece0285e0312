package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Document store driver: "memory", "postgres" or "surreal"
	StoreDriver string
	DatabaseURL string
	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string
	// Identity collaborator (JWKS endpoint of the auth provider)
	JWKSUrl string
	// Blob storage (S3-compatible)
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3PublicBaseURL   string
	// Listing behavior
	HomeFeedLimit     int
	ActivityFeedLimit int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SurrealURL:  getEnv("SURREAL_URL", "ws://localhost:8000/rpc"),
		SurrealNS:   getEnv("SURREAL_NS", "skillhub"),
		SurrealDB:   getEnv("SURREAL_DB", "skillhub"),
		SurrealUser: getEnv("SURREAL_USER", "root"),
		SurrealPass: getEnv("SURREAL_PASS", ""),
		// Strip trailing slash to avoid double slashes when composing paths
		JWKSUrl:           strings.TrimRight(getEnv("JWKS_URL", ""), "/"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "ap-southeast-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		HomeFeedLimit:     getEnvInt("HOME_FEED_LIMIT", 6),
		ActivityFeedLimit: getEnvInt("ACTIVITY_FEED_LIMIT", 10),
	}

	if cfg.StoreDriver == "postgres" && cfg.DatabaseURL == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWKSUrl == "" {
		log.Println("WARNING: JWKS_URL not configured. Token verification will fail.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
