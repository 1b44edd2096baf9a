package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Server
	Port             string
	CORSOrigins      string
	RateLimitMax     int
	AuthRateLimitMax int
	AppEnv           string
	SentryDSN        string

	// Events
	NATSURL string

	// Logging
	LogRetention time.Duration
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "softdesk"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		Port:             getEnv("PORT", "8080"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		RateLimitMax:     parseInt(getEnv("RATE_LIMIT_MAX", "60"), 60),
		AuthRateLimitMax: parseInt(getEnv("AUTH_RATE_LIMIT_MAX", "10"), 10),
		AppEnv:           getEnv("APP_ENV", "development"),
		SentryDSN:        getEnv("SENTRY_DSN", ""),

		NATSURL: getEnv("NATS_URL", ""),

		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 720*time.Hour),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
