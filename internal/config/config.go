package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	JWTSecret string
	JWTExpiry time.Duration

	MockLatency time.Duration

	// DatabaseURL switches client-side local storage to Postgres when set.
	DatabaseURL      string
	StoragePath      string
	StorageNamespace string

	APIEndpoint string
	HTTPTimeout time.Duration

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getDuration("JWT_EXPIRY", 168*time.Hour),

		MockLatency: getDuration("MOCK_LATENCY", 300*time.Millisecond),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		StoragePath:      getEnv("STORAGE_PATH", defaultStoragePath()),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", "default"),

		APIEndpoint: getEnv("API_ENDPOINT", ""),
		HTTPTimeout: getDuration("HTTP_TIMEOUT", 30*time.Second),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return d
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "carshare.toml"
	}
	return filepath.Join(dir, "carshare", "storage.toml")
}
