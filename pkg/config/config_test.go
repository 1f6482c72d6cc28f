package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
environment: test
server:
  port: 9090
providers:
  marketstack:
    api_key: ms-key
  alphavantage:
    api_key: av-key
  news:
    api_key: news-key
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Environment != "test" {
		t.Errorf("environment = %q", c.Environment)
	}
	if c.Server.Port != 9090 {
		t.Errorf("port = %d", c.Server.Port)
	}
	if c.Providers.Marketstack.APIKey != "ms-key" {
		t.Errorf("marketstack key = %q", c.Providers.Marketstack.APIKey)
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read_timeout = %v", c.Server.ReadTimeout)
	}
	if c.Logger.Level != "info" {
		t.Errorf("logger level = %q", c.Logger.Level)
	}
	if c.Metrics.Path != "/metrics" {
		t.Errorf("metrics path = %q", c.Metrics.Path)
	}
	if c.Providers.News.BaseURL != "https://newsapi.org/v2/everything" {
		t.Errorf("news base_url = %q", c.Providers.News.BaseURL)
	}
	if c.Agent.SessionStore != "memory" {
		t.Errorf("session_store = %q", c.Agent.SessionStore)
	}
}

func TestLoadMissingKey(t *testing.T) {
	yaml := `
providers:
  marketstack:
    api_key: ms-key
  news:
    api_key: news-key
`
	_, err := Load(writeConfig(t, yaml))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Field != "providers.alphavantage.api_key" {
		t.Errorf("field = %q", cfgErr.Field)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadAgentEnabledNeedsKey(t *testing.T) {
	yaml := validYAML + `
agent:
  enabled: true
`
	_, err := Load(writeConfig(t, yaml))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Field != "agent.api_key" {
		t.Errorf("field = %q", cfgErr.Field)
	}
}

func TestLoadInvalidSessionStore(t *testing.T) {
	yaml := validYAML + `
agent:
  session_store: postgres
`
	_, err := Load(writeConfig(t, yaml))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Field != "agent.session_store" {
		t.Errorf("field = %q", cfgErr.Field)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("MARKETSTACK_API_KEY", "env-ms")
	t.Setenv("NEWS_URL", "https://example.test/news")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Providers.Marketstack.APIKey != "env-ms" {
		t.Errorf("marketstack key = %q", c.Providers.Marketstack.APIKey)
	}
	if c.Providers.News.BaseURL != "https://example.test/news" {
		t.Errorf("news base_url = %q", c.Providers.News.BaseURL)
	}
	if !c.Agent.Enabled {
		t.Error("OPENAI_API_KEY should enable the agent")
	}
	if c.Agent.APIKey != "env-openai" {
		t.Errorf("agent key = %q", c.Agent.APIKey)
	}
}
