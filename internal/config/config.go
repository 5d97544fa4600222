// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	Policy PolicyConfig
	Logger LoggerConfig
	Seed   SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name string
	Env  string
	Host string
	Port string
}

// PolicyConfig holds the circulation policy knobs.
type PolicyConfig struct {
	LoanPeriodDays int
	FineRatePerDay float64
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SeedConfig describes the bootstrap admin account.
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fineRate, err := strconv.ParseFloat(getEnv("FINE_RATE_PER_DAY", "1.00"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FINE_RATE_PER_DAY: %w", err)
	}
	loanPeriod := getEnvAsInt("LOAN_PERIOD_DAYS", 15)
	if loanPeriod <= 0 {
		return nil, fmt.Errorf("LOAN_PERIOD_DAYS must be positive, got %d", loanPeriod)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "libtrack"),
			Env:  getEnv("APP_ENV", "development"),
			Host: getEnv("APP_HOST", "0.0.0.0"),
			Port: getEnv("APP_PORT", "8080"),
		},
		Policy: PolicyConfig{
			LoanPeriodDays: loanPeriod,
			FineRatePerDay: fineRate,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "adminpass"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// LoanPeriod returns the loan period as a duration.
func (p PolicyConfig) LoanPeriod() time.Duration {
	return time.Duration(p.LoanPeriodDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
