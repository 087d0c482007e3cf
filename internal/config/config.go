// Package config loads application configuration from environment variables
// and an optional yaml file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// server
	HTTPPort int `yaml:"http_port"`

	// database
	DatabasePath string `yaml:"database_path"`

	// api client
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// simulator
	LatencyMin   time.Duration `yaml:"latency_min"`
	LatencyMax   time.Duration `yaml:"latency_max"`
	ErrorRate    float64       `yaml:"error_rate"` // 0.0–1.0 probability of an injected 5xx
	RateLimitRPS float64       `yaml:"rate_limit_rps"`

	// seed
	SeedJobs       int `yaml:"seed_jobs"`
	SeedCandidates int `yaml:"seed_candidates"`

	// logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Load reads configuration from environment variables with sensible defaults.
// If TALENTFLOW_CONFIG points at a yaml file, it is applied first and the
// environment overrides it.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("TALENTFLOW_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT_MS", cfg.RequestTimeout)
	cfg.LatencyMin = getEnvDuration("SIM_LATENCY_MIN_MS", cfg.LatencyMin)
	cfg.LatencyMax = getEnvDuration("SIM_LATENCY_MAX_MS", cfg.LatencyMax)
	cfg.ErrorRate = getEnvFloat("SIM_ERROR_RATE", cfg.ErrorRate)
	cfg.RateLimitRPS = getEnvFloat("SIM_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.SeedJobs = getEnvInt("SEED_JOBS", cfg.SeedJobs)
	cfg.SeedCandidates = getEnvInt("SEED_CANDIDATES", cfg.SeedCandidates)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTPPort:       3200,
		DatabasePath:   "./data/talentflow.db",
		APIBaseURL:     "http://localhost:3200/api/v1",
		RequestTimeout: 30 * time.Second,
		LatencyMin:     200 * time.Millisecond,
		LatencyMax:     800 * time.Millisecond,
		ErrorRate:      0.05,
		RateLimitRPS:   50,
		SeedJobs:       25,
		SeedCandidates: 200,
		LogLevel:       "info",
		LogFile:        "",
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) validate() error {
	if c.ErrorRate < 0 || c.ErrorRate > 1 {
		return fmt.Errorf("error rate must be in [0,1], got %v", c.ErrorRate)
	}
	if c.LatencyMax < c.LatencyMin {
		return fmt.Errorf("latency max %v is below latency min %v", c.LatencyMax, c.LatencyMin)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvDuration reads a millisecond count from the environment.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultVal
}
