// Package config has the configuration for the converter and the API server
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment the binary runs in
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
)

// ParseEnvironment maps an ENV value, including the long forms, to an Environment
func ParseEnvironment(value string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	}
	return EnvDevelopment, fmt.Errorf("ENV must be one of: [dev staging prod test], got: %s", value)
}

func (e Environment) String() string {
	return string(e)
}

// Config holds all application configuration
type Config struct {
	Port              string // API server only
	Address           string // API server only
	Env               Environment
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int      // Number of weeks to keep log files
	RefreshTimes      []string // HH:MM times of the scheduled re-conversions
	MetricsFile       string   // Optional Prometheus textfile written after a one-shot conversion
}

// Load loads and validates the API server configuration from environment variables
func Load() (*Config, error) {
	cfg, err := loadCommon()
	if err != nil {
		return nil, err
	}

	cfg.Port = getEnvWithDefault("PORT", "8000")
	cfg.Address = getEnvWithDefault("ADDRESS", "127.0.0.1")
	cfg.RefreshTimes = splitTimes(getEnvWithDefault("REFRESH_TIMES", "06:00;18:00"))

	if err := validateServerConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConverter loads the settings of the one-shot conversion.
// PORT, ADDRESS and REFRESH_TIMES are not read, whatever their values.
func LoadConverter() (*Config, error) {
	return loadCommon()
}

// loadCommon reads the environment, logging and metrics settings shared by both binaries
func loadCommon() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", "dev"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	cfg := &Config{
		Env:               env,
		LogLevel:          strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
		LogDir:            getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MetricsFile:       os.Getenv("METRICS_FILE"),
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid LOG_LEVEL: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid LOG_RETENTION_WEEKS: %w", err)
	}

	return cfg, nil
}

// validateServerConfig validates the settings only the API server uses
func validateServerConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateRefreshTimes(cfg.RefreshTimes); err != nil {
		return fmt.Errorf("invalid REFRESH_TIMES: %w", err)
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "localhost" {
		return nil
	}

	if ip := net.ParseIP(address); ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	return nil
}

func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 { // 1 year maximum
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateRefreshTimes checks that every entry is a HH:MM time of day
func validateRefreshTimes(times []string) error {
	if len(times) == 0 {
		return fmt.Errorf("REFRESH_TIMES cannot be empty")
	}

	for _, t := range times {
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("REFRESH_TIMES entry %q is not a HH:MM time", t)
		}
	}

	return nil
}

func splitTimes(value string) []string {
	var times []string
	for _, t := range strings.Split(value, ";") {
		if t = strings.TrimSpace(t); t != "" {
			times = append(times, t)
		}
	}
	return times
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"REFRESH_TIMES",
		"METRICS_FILE",
	}
}

// SetEnvVars returns the expected environment variables that are set, for startup logs
func SetEnvVars() []string {
	var set []string
	for _, key := range GetEnvVars() {
		if _, ok := os.LookupEnv(key); ok {
			set = append(set, key)
		}
	}
	return set
}
