// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SERVER_PORT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overrides, ignored when not present.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from the working directory and its ancestors, so the
// binary and tests behave the same from any directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "planflow"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "2.0.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		// Plan generation can walk every tier; the write timeout has to
		// cover the worst case of N tiers x per-tier timeout.
		cfg.Server.WriteTimeout = 120000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	if len(cfg.Tiers) == 0 {
		cfg.Tiers = defaultTiers()
	}
	for i := range cfg.Tiers {
		t := &cfg.Tiers[i]
		if t.BaseURL == "" {
			t.BaseURL = "https://api.groq.com/openai/v1"
		}
		if t.APIKeyEnv == "" {
			t.APIKeyEnv = "GROQ_API_KEY"
		}
		if t.Timeout == 0 {
			t.Timeout = 20000
		}
		if t.MaxTokens == 0 {
			t.MaxTokens = 4096
		}
		if t.CooldownTTL == 0 {
			t.CooldownTTL = 60
		}
	}

	if cfg.Sufficiency.Model == "" {
		cfg.Sufficiency.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Sufficiency.Timeout == 0 {
		cfg.Sufficiency.Timeout = 15000
	}
	if cfg.Sufficiency.WindowSize == 0 {
		cfg.Sufficiency.WindowSize = 3
	}
	if cfg.Sufficiency.SimilarityThreshold == 0 {
		cfg.Sufficiency.SimilarityThreshold = 0.85
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func defaultTiers() []TierConfig {
	return []TierConfig{
		{
			Name:        "groq-llama-70b",
			Model:       "llama-3.3-70b-versatile",
			Rank:        3,
			Temperature: 0.3,
		},
		{
			Name:        "groq-llama-8b",
			Model:       "llama-3.1-8b-instant",
			Rank:        2,
			Temperature: 0.3,
		},
		{
			Name:        "groq-gemma-9b",
			Model:       "gemma2-9b-it",
			Rank:        1,
			Temperature: 0.3,
		},
	}
}
