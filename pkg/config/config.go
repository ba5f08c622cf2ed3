package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	Env          string
	PostgresUrl  string
	JWTSecret    string
	TokenTTL     time.Duration
	HNBaseURL    string
	FeedWorkers  int
	FetchTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		PostgresUrl:  getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     time.Duration(getInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		HNBaseURL:    getEnv("HN_BASE_URL", "https://hacker-news.firebaseio.com"),
		FeedWorkers:  getInt("FEED_WORKERS", 16),
		FetchTimeout: time.Duration(getInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
