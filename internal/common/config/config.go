// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Tiers       []TierConfig      `mapstructure:"tiers"`
	Sufficiency SufficiencyConfig `mapstructure:"sufficiency"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// TierConfig describes one ranked model backend. Tiers are attempted in
// descending rank order; the synthetic generator sits below the lowest rank.
type TierConfig struct {
	Name        string  `mapstructure:"name"`
	Model       string  `mapstructure:"model"`
	Rank        int     `mapstructure:"rank"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKeyEnv   string  `mapstructure:"api_key_env"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	CooldownTTL int     `mapstructure:"cooldown_ttl"` // seconds, after a rate limit
}

// SufficiencyConfig tunes the conversation completeness estimator.
type SufficiencyConfig struct {
	Model               string  `mapstructure:"model"`
	Timeout             int     `mapstructure:"timeout"`     // milliseconds
	WindowSize          int     `mapstructure:"window_size"` // last K assistant questions
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TopTier returns the highest-ranked tier. File order carries no meaning;
// rank alone decides quality.
func (c *Config) TopTier() TierConfig {
	top := c.Tiers[0]
	for _, t := range c.Tiers[1:] {
		if t.Rank > top.Rank {
			top = t
		}
	}
	return top
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	seen := map[int]string{}
	for _, t := range cfg.Tiers {
		if t.Name == "" {
			return fmt.Errorf("tier with model %q has no name", t.Model)
		}
		if t.Model == "" {
			return fmt.Errorf("tier %q has no model", t.Name)
		}
		if t.Timeout <= 0 {
			return fmt.Errorf("tier %q has non-positive timeout", t.Name)
		}
		if other, dup := seen[t.Rank]; dup {
			return fmt.Errorf("tiers %q and %q share rank %d", other, t.Name, t.Rank)
		}
		seen[t.Rank] = t.Name
	}
	if cfg.Sufficiency.WindowSize <= 0 {
		return fmt.Errorf("sufficiency.window_size must be positive")
	}
	if cfg.Sufficiency.SimilarityThreshold <= 0 || cfg.Sufficiency.SimilarityThreshold > 1 {
		return fmt.Errorf("sufficiency.similarity_threshold must be in (0,1]")
	}
	return nil
}
