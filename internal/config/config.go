package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret    string
	JWTAlgorithm string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	EmailTTL     time.Duration

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	AppBaseURL  string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/photoshare?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),
		AccessTTL:    getEnvSeconds("ACCESS_TOKEN_TTL", 3600),
		RefreshTTL:   getEnvSeconds("REFRESH_TOKEN_TTL", 604800),
		EmailTTL:     getEnvSeconds("EMAIL_TOKEN_TTL", 86400),

		MailHost:     getEnv("MAIL_HOST", "localhost"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@photoshare.local"),

		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:8080"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
