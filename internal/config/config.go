package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv string
	Port   string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisURL string

	SecretKey      string
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration

	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	EmailsFromName string
	EmailsFrom     string
	FrontendURL    string

	InferenceURL           string
	DetectionMinConfidence float64

	AuthRateLimit time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "fraud_detection"),

		RedisURL: os.Getenv("REDIS_URL"),

		SecretKey: os.Getenv("SECRET_KEY"),

		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		EmailsFromName: getEnv("EMAILS_FROM_NAME", "Exam Administration"),
		EmailsFrom:     os.Getenv("EMAILS_FROM_EMAIL"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000/"),

		InferenceURL: getEnv("INFERENCE_URL", "http://localhost:5000"),
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	cfg.AccessTokenTTL = time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute
	cfg.ResetTokenTTL = time.Duration(getEnvInt("PASSWORD_RESET_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute

	var err error
	cfg.DetectionMinConfidence, err = strconv.ParseFloat(getEnv("DETECTION_MIN_CONFIDENCE", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DETECTION_MIN_CONFIDENCE: %w", err)
	}

	cfg.AuthRateLimit, err = time.ParseDuration(getEnv("AUTH_RATE_LIMIT", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
