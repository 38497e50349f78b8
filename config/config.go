package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	AppEnv            string
	LogFormat         string
	LogLevel          string
	UpstreamURL       string
	UpstreamTimeout   time.Duration
	DBDriver          string
	DBDSN             string
	JWTSecret         string
	JWTTTL            time.Duration
	Timezone          string
	DefaultWindowDays int
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              GetEnv("PORT", "3000"),
		AppEnv:            GetEnv("APP_ENV", "development"),
		LogFormat:         GetEnv("LOG_FORMAT", ""),
		LogLevel:          GetEnv("LOG_LEVEL", ""),
		UpstreamURL:       strings.TrimRight(GetEnv("UPSTREAM_URL", "http://localhost:8080/api"), "/"),
		UpstreamTimeout:   GetEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		DBDriver:          strings.ToLower(GetEnv("DB_DRIVER", "mysql")),
		DBDSN:             GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/presencia?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:         GetEnv("JWT_SECRET", ""),
		JWTTTL:            GetEnvAsDuration("JWT_TTL", 24*time.Hour),
		Timezone:          GetEnv("TIMEZONE", ""),
		DefaultWindowDays: GetEnvAsInt("DEFAULT_WINDOW_DAYS", 7),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves TIMEZONE, falling back to the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
