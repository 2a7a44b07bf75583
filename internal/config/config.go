package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"equiptrack/pkg/database"
)

// Config holds the service configuration, loaded from environment variables
type Config struct {
	HTTPPort          string
	Environment       string
	LogLevel          string
	Database          database.Config
	AllowRegistration bool
	UploadDir         string
	JaegerEndpoint    string
	KafkaBrokers      []string
	CORSOrigin        string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load reads the configuration from the environment. A .env file is honored
// when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "4000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: database.Config{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "equiptrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "equiptrack.db"),
		},
		AllowRegistration: getEnv("ALLOW_REGISTRATION", "false") == "true",
		UploadDir:         getEnv("UPLOAD_DIR", "./tmp"),
		JaegerEndpoint:    getEnv("JAEGER_ENDPOINT", ""),
		CORSOrigin:        getEnv("CORS_ORIGIN", "*"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@local"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin"),
		AdminName:         getEnv("ADMIN_NAME", "Админ"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
