// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.


package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	sinkSlog     = "slog"
	sinkRedis    = "redis"
	sinkPostgres = "postgres"
	sinkQueue    = "queue"
)

type redisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type workerConfig struct {
	Workers int `yaml:"workers"`
}

type serverConfig struct {
	ListenHost      string `yaml:"listen_host"`
	ListenPort      int    `yaml:"listen_port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type remoteConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	BaseURL     string   `yaml:"base_url"`
	Temperature *float32 `yaml:"temperature"`
	Timeout     string   `yaml:"timeout"`

	// from the environment only
	APIKey string `yaml:"-"`
}

type searchLogConfig struct {
	Sink        string `yaml:"sink"`
	Stream      string `yaml:"stream"`
	DatabaseURL string `yaml:"database_url"`
	Timeout     string `yaml:"timeout"`
}

type config struct {
	LogLevel string `yaml:"log_level"`

	Server serverConfig `yaml:"server"`
	Worker workerConfig `yaml:"worker"`
	Redis  redisConfig  `yaml:"redis"`

	Remote    remoteConfig    `yaml:"remote"`
	SearchLog searchLogConfig `yaml:"search_log"`
}

// ReadConfig parses the yaml file at path, then fills defaults and secrets
// from the environment. A missing file yields the defaults.
func ReadConfig(path string) (*config, error) {
	var conf config

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("config file not found, using defaults", "path", path)
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, &conf); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}

	conf.applyDefaults()
	conf.applyEnv(os.Getenv)

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.ListenPort == 0 {
		c.Server.ListenPort = 8080
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "15s"
	}
	if c.Worker.Workers == 0 {
		c.Worker.Workers = 10
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Remote.Provider == "" {
		c.Remote.Provider = "openai"
	}
	if c.Remote.Temperature == nil {
		t := float32(0.7)
		c.Remote.Temperature = &t
	}
	if c.Remote.Timeout == "" {
		c.Remote.Timeout = "10s"
	}
	if c.SearchLog.Sink == "" {
		c.SearchLog.Sink = sinkSlog
	}
	if c.SearchLog.Timeout == "" {
		c.SearchLog.Timeout = "2s"
	}
}

func (c *config) applyEnv(getenv func(string) string) {
	firstOf := func(keys ...string) string {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				return v
			}
		}
		return ""
	}

	switch c.Remote.Provider {
	case "openai":
		c.Remote.APIKey = firstOf("OPENAI_API_KEY", "AI_INTEGRATIONS_OPENAI_API_KEY")
		if c.Remote.BaseURL == "" {
			c.Remote.BaseURL = firstOf("OPENAI_BASE_URL", "AI_INTEGRATIONS_OPENAI_BASE_URL")
		}
	case "gemini":
		c.Remote.APIKey = getenv("GEMINI_API_KEY")
	case "cohere":
		c.Remote.APIKey = getenv("COHERE_API_KEY")
	}

	if c.SearchLog.DatabaseURL == "" {
		c.SearchLog.DatabaseURL = getenv("DATABASE_URL")
	}
}

func (c *config) validate() error {
	for name, d := range map[string]string{
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"remote.timeout":          c.Remote.Timeout,
		"search_log.timeout":      c.SearchLog.Timeout,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid duration for '%s': %w", name, err)
		}
	}

	switch c.SearchLog.Sink {
	case sinkSlog, sinkRedis, sinkPostgres, sinkQueue:
	default:
		return fmt.Errorf("invalid search_log.sink '%s'", c.SearchLog.Sink)
	}

	if c.SearchLog.Sink == sinkPostgres && c.SearchLog.DatabaseURL == "" {
		return errors.New("search_log.sink 'postgres' requires search_log.database_url or DATABASE_URL")
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	return nil
}

// duration returns a value already checked by validate.
func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

func (c *config) level() slog.Level {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl
}
