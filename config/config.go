package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the agent. Values are loaded once and
// passed explicitly into the components that need them; nothing here is
// process-wide mutable state.
type Config struct {
	// Server settings
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Authentication. An empty APIKey starts the agent in open mode.
	APIKey    string
	JWTSecret string

	// Security
	AllowedOrigins []string
	RateLimitRPS   int

	// Logging
	LogLevel string

	// Sampling
	SampleTimeout time.Duration

	// Health classification thresholds (percent of the worst metric).
	HealthStressAt   float64
	HealthCriticalAt float64

	// Switch port lookup defaults
	SNMPTimeout time.Duration
	SNMPRetries int
	SNMPPort    uint16
}

// Load reads configuration from environment variables, preferring a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load(getEnvFile())

	cfg := &Config{
		Port:             getEnvInt("PORT", 8094),
		Host:             getEnv("HOST", "0.0.0.0"),
		ReadTimeout:      time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout:     time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 300)) * time.Second,
		APIKey:           getEnv("API_KEY", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		AllowedOrigins:   getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:     getEnvInt("RATE_LIMIT_RPS", 100),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SampleTimeout:    time.Duration(getEnvInt("SAMPLE_TIMEOUT_SECONDS", 3)) * time.Second,
		HealthStressAt:   getEnvFloat("HEALTH_STRESS_AT", 70),
		HealthCriticalAt: getEnvFloat("HEALTH_CRITICAL_AT", 90),
		SNMPTimeout:      time.Duration(getEnvInt("SNMP_TIMEOUT_MS", 1500)) * time.Millisecond,
		SNMPRetries:      getEnvInt("SNMP_RETRIES", 2),
		SNMPPort:         uint16(getEnvInt("SNMP_PORT", 161)),
	}

	if cfg.HealthStressAt >= cfg.HealthCriticalAt {
		return nil, fmt.Errorf("HEALTH_STRESS_AT (%v) must be below HEALTH_CRITICAL_AT (%v)",
			cfg.HealthStressAt, cfg.HealthCriticalAt)
	}

	if cfg.APIKey != "" && cfg.JWTSecret == "" {
		// Use API key as fallback for JWT secret
		cfg.JWTSecret = cfg.APIKey
	}

	return cfg, nil
}

// OpenMode reports whether the agent runs without authentication.
func (c *Config) OpenMode() bool {
	return c.APIKey == ""
}

// Addr returns the server address string
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadWithDefaults loads config with defaults for testing
func LoadWithDefaults() *Config {
	return &Config{
		Port:             8094,
		Host:             "0.0.0.0",
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     300 * time.Second,
		APIKey:           "test-api-key",
		JWTSecret:        "test-jwt-secret",
		AllowedOrigins:   []string{"*"},
		RateLimitRPS:     100,
		LogLevel:         "info",
		SampleTimeout:    3 * time.Second,
		HealthStressAt:   70,
		HealthCriticalAt: 90,
		SNMPTimeout:      1500 * time.Millisecond,
		SNMPRetries:      2,
		SNMPPort:         161,
	}
}

// getEnvFile returns the path to the .env file
func getEnvFile() string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return envFile
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	// Fall back to the executable's directory
	exe, err := os.Executable()
	if err == nil {
		dir := strings.TrimSuffix(exe, "/devicepulse-agent")
		envPath := dir + "/.env"
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	return ".env"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
