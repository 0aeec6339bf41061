// Package config loads process configuration from the environment, with an
// optional YAML file overriding the abuse-control limits.
package config

import (
	"fmt"
	"os"
	"strconv"

	"driverprofilebot/pkg/security"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BotToken    string
	DatabaseDSN string
	AdminAddr   string
	// StrictPersistence makes the finalizer surface storage failures to the
	// user instead of showing the success flow regardless.
	StrictPersistence bool
	Security          security.Limits
}

// Load reads .env if present, then the environment. BOT_TOKEN and
// DATABASE_DSN are required; everything else has defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		AdminAddr:   os.Getenv("ADMIN_ADDR"),
		Security:    security.DefaultLimits(),
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.AdminAddr == "" {
		cfg.AdminAddr = ":8080"
	}

	if v := os.Getenv("STRICT_PERSISTENCE"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing STRICT_PERSISTENCE %q: %w", v, err)
		}
		cfg.StrictPersistence = strict
	}

	if path := os.Getenv("SECURITY_LIMITS_FILE"); path != "" {
		limits, err := loadLimits(path)
		if err != nil {
			return nil, err
		}
		cfg.Security = cfg.Security.Merge(limits)
	}
	return cfg, nil
}

func loadLimits(path string) (security.Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return security.Limits{}, fmt.Errorf("reading security limits file %q: %w", path, err)
	}
	var limits security.Limits
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return security.Limits{}, fmt.Errorf("parsing security limits file %q: %w", path, err)
	}
	return limits, nil
}
