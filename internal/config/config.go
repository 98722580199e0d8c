// Package config loads qbench settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
// SimulatorURL is the preferred (Aer) service and FallbackURL the generic compile/execute
// service. Timeout applies to each request. RateLimit caps simulator requests per second,
// 0 disables the limit. An empty MetricsAddr disables the metrics endpoint.
type Config struct {
	SimulatorURL string        `validate:"required,url"`
	FallbackURL  string        `validate:"required,url"`
	Timeout      time.Duration `validate:"gt=0"`
	Codec        string        `validate:"oneof=json msgpack"`
	OptLevel     int           `validate:"min=0,max=3"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
	RateLimit    int           `validate:"min=0"`
	LogPretty    bool
	MetricsAddr  string
}

// Load reads configuration from environment variables.
// Values in a .env file in the working directory are used for variables that are not set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	simURL := getEnv("QBENCH_SIM_URL", "http://localhost:8000")
	cfg := &Config{
		SimulatorURL: simURL,
		FallbackURL:  getEnv("QBENCH_FALLBACK_URL", simURL),
		Timeout:      time.Duration(getEnvAsInt("QBENCH_SIM_TIMEOUT", 60)) * time.Second,
		Codec:        getEnv("QBENCH_SIM_CODEC", "json"),
		OptLevel:     getEnvAsInt("QBENCH_OPT_LEVEL", 1),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", false),
		RateLimit:    getEnvAsInt("QBENCH_SIM_RPS", 0),
		MetricsAddr:  getEnv("QBENCH_METRICS_ADDR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
