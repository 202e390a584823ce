package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENAI_API_KEY", "AI_INTEGRATIONS_OPENAI_API_KEY",
		"OPENAI_BASE_URL", "AI_INTEGRATIONS_OPENAI_BASE_URL",
		"GEMINI_API_KEY", "COHERE_API_KEY", "DATABASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careerpath.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestReadConfigDefaults(t *testing.T) {
	clearEnv(t)

	conf, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conf.Server.ListenPort != 8080 {
		t.Errorf("expected port 8080, got %d", conf.Server.ListenPort)
	}
	if conf.Remote.Provider != "openai" {
		t.Errorf("expected openai provider, got '%s'", conf.Remote.Provider)
	}
	if *conf.Remote.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", *conf.Remote.Temperature)
	}
	if duration(conf.Remote.Timeout) != 10*time.Second {
		t.Errorf("expected 10s remote timeout, got '%s'", conf.Remote.Timeout)
	}
	if duration(conf.SearchLog.Timeout) != 2*time.Second {
		t.Errorf("expected 2s search log timeout, got '%s'", conf.SearchLog.Timeout)
	}
	if conf.SearchLog.Sink != sinkSlog {
		t.Errorf("expected slog sink, got '%s'", conf.SearchLog.Sink)
	}
	if conf.level() != slog.LevelInfo {
		t.Errorf("expected info level, got '%v'", conf.level())
	}
}

func TestReadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("COHERE_API_KEY", "cohere-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/careerpath")

	path := writeConfig(t, `
log_level: debug
server:
  listen_port: 9090
remote:
  provider: cohere
  temperature: 0
  timeout: 3s
search_log:
  sink: postgres
`)

	conf, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conf.Server.ListenPort != 9090 {
		t.Errorf("expected port 9090, got %d", conf.Server.ListenPort)
	}
	if conf.Remote.APIKey != "cohere-key" {
		t.Errorf("expected cohere key from env, got '%s'", conf.Remote.APIKey)
	}
	if *conf.Remote.Temperature != 0 {
		t.Errorf("expected explicit zero temperature, got %v", *conf.Remote.Temperature)
	}
	if conf.SearchLog.DatabaseURL != "postgres://localhost/careerpath" {
		t.Errorf("expected database url from env, got '%s'", conf.SearchLog.DatabaseURL)
	}
	if conf.level() != slog.LevelDebug {
		t.Errorf("expected debug level, got '%v'", conf.level())
	}
}

func TestApplyEnvOpenAIFallbackKeys(t *testing.T) {
	env := map[string]string{
		"AI_INTEGRATIONS_OPENAI_API_KEY":  "integration-key",
		"AI_INTEGRATIONS_OPENAI_BASE_URL": "http://proxy/v1",
	}

	conf := config{}
	conf.applyDefaults()
	conf.applyEnv(func(k string) string { return env[k] })

	if conf.Remote.APIKey != "integration-key" {
		t.Errorf("expected integration key, got '%s'", conf.Remote.APIKey)
	}
	if conf.Remote.BaseURL != "http://proxy/v1" {
		t.Errorf("expected integration base url, got '%s'", conf.Remote.BaseURL)
	}

	env["OPENAI_API_KEY"] = "primary-key"
	conf.applyEnv(func(k string) string { return env[k] })
	if conf.Remote.APIKey != "primary-key" {
		t.Errorf("expected primary key to win, got '%s'", conf.Remote.APIKey)
	}
}

func TestReadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad duration", content: "remote:\n  timeout: soon\n"},
		{name: "bad sink", content: "search_log:\n  sink: kafka\n"},
		{name: "postgres without url", content: "search_log:\n  sink: postgres\n"},
		{name: "bad log level", content: "log_level: loud\n"},
		{name: "bad yaml", content: "server: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ReadConfig(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error for config '%s'", tt.content)
			}
		})
	}
}
