package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// TokenEncryptionSecret protects stored Gmail OAuth tokens at rest.
	TokenEncryptionSecret string

	// SyncMaxResults caps how many message ids are listed per label per sync.
	SyncMaxResults int64
	// SyncFetchRate limits full-message fetches per second during a sync.
	SyncFetchRate float64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	syncMax := int64(50)
	if raw := os.Getenv("SYNC_MAX_RESULTS"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			syncMax = parsed
		}
	}

	fetchRate := 10.0
	if raw := os.Getenv("SYNC_FETCH_RATE"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			fetchRate = parsed
		}
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		DatabaseURL:           getEnv("DATABASE_URL", "host=localhost user=edupath password=edupath dbname=edupath port=5432 sslmode=disable"),
		JWTSecret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:       accessExpiry,
		JWTRefreshExpiry:      refreshExpiry,
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/mailbox/callback"),
		TokenEncryptionSecret: getEnv("TOKEN_ENCRYPTION_SECRET", ""),
		SyncMaxResults:        syncMax,
		SyncFetchRate:         fetchRate,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
