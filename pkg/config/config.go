package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigurationError means the process cannot start: a credential or URL is
// missing or invalid. Surfaced at startup, never as a downstream data error.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logger struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logger"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Providers struct {
		Timeout     time.Duration `yaml:"timeout"`
		Marketstack struct {
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"marketstack"`
		AlphaVantage struct {
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"alphavantage"`
		News struct {
			BaseURL string `yaml:"base_url"`
			APIKey  string `yaml:"api_key"`
		} `yaml:"news"`
	} `yaml:"providers"`
	Agent struct {
		Enabled      bool   `yaml:"enabled"`
		Model        string `yaml:"model"`
		APIKey       string `yaml:"api_key"`
		SessionStore string `yaml:"session_store"` // memory or redis
		Redis        struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"agent"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("MARKETSTACK_API_KEY"); v != "" {
		c.Providers.Marketstack.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.Providers.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.Providers.News.APIKey = v
	}
	if v := os.Getenv("NEWS_URL"); v != "" {
		c.Providers.News.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Agent.APIKey = v
		c.Agent.Enabled = true
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Agent.Redis.Addr = v
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "console"
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Providers.Timeout == 0 {
		c.Providers.Timeout = 10 * time.Second
	}
	if c.Providers.Marketstack.BaseURL == "" {
		c.Providers.Marketstack.BaseURL = "https://api.marketstack.com/v1"
	}
	if c.Providers.AlphaVantage.BaseURL == "" {
		c.Providers.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if c.Providers.News.BaseURL == "" {
		c.Providers.News.BaseURL = "https://newsapi.org/v2/everything"
	}
	if c.Agent.Model == "" {
		c.Agent.Model = "gpt-4o-mini"
	}
	if c.Agent.SessionStore == "" {
		c.Agent.SessionStore = "memory"
	}
	if c.Agent.Redis.Addr == "" {
		c.Agent.Redis.Addr = "localhost:6379"
	}
}

// Validate fails fast on missing credentials so a bad deployment never
// surfaces as a downstream data error.
func (c *Config) Validate() error {
	if c.Providers.Marketstack.APIKey == "" {
		return &ConfigurationError{Field: "providers.marketstack.api_key", Reason: "is required"}
	}
	if c.Providers.AlphaVantage.APIKey == "" {
		return &ConfigurationError{Field: "providers.alphavantage.api_key", Reason: "is required"}
	}
	if c.Providers.News.APIKey == "" {
		return &ConfigurationError{Field: "providers.news.api_key", Reason: "is required"}
	}
	if c.Providers.News.BaseURL == "" {
		return &ConfigurationError{Field: "providers.news.base_url", Reason: "is required"}
	}
	if c.Agent.Enabled && c.Agent.APIKey == "" {
		return &ConfigurationError{Field: "agent.api_key", Reason: "is required when agent is enabled"}
	}
	if s := c.Agent.SessionStore; s != "memory" && s != "redis" {
		return &ConfigurationError{Field: "agent.session_store", Reason: fmt.Sprintf("must be 'memory' or 'redis', got %q", s)}
	}
	return nil
}
