package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Auth      AuthConfig      `yaml:"auth"`
	Coach     CoachConfig     `yaml:"coach"`
	Remote    RemoteConfig    `yaml:"remote"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// CoachConfig points at an OpenAI-compatible chat completions endpoint.
type CoachConfig struct {
	BaseURL   string  `yaml:"base_url"`
	APIKey    string  `yaml:"api_key"`
	Model     string  `yaml:"model"`
	MaxTokens int     `yaml:"max_tokens"`
	Temp      float64 `yaml:"temperature"`
}

// RemoteConfig holds credentials for the hosted Parse-compatible store the
// original app persisted to. Used by the MCP binary's -parse mode.
type RemoteConfig struct {
	BaseURL string `yaml:"base_url"`
	AppID   string `yaml:"app_id"`
	RestKey string `yaml:"rest_key"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

const (
	defaultCoachBaseURL   = "https://api.groq.com/openai/v1"
	defaultCoachModel     = "meta-llama/llama-4-scout-17b-16e-instruct"
	defaultCoachMaxTokens = 500
	defaultCoachTemp      = 0.7
)

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix BUILTBUFF_ and underscore-separated
// paths:
//
//	BUILTBUFF_SERVER_HOST, BUILTBUFF_SERVER_PORT,
//	BUILTBUFF_DB_HOST, BUILTBUFF_DB_PORT, BUILTBUFF_DB_NAME,
//	BUILTBUFF_DB_USER, BUILTBUFF_DB_PASSWORD, BUILTBUFF_DB_SSLMODE,
//	BUILTBUFF_AUTH_API_KEY, BUILTBUFF_COACH_API_KEY,
//	BUILTBUFF_REMOTE_APP_ID, BUILTBUFF_REMOTE_REST_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyCoachDefaults(&cfg.Coach)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BUILTBUFF_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BUILTBUFF_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BUILTBUFF_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("BUILTBUFF_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("BUILTBUFF_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("BUILTBUFF_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("BUILTBUFF_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("BUILTBUFF_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("BUILTBUFF_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("BUILTBUFF_COACH_API_KEY"); v != "" {
		cfg.Coach.APIKey = v
	}
	if v := os.Getenv("BUILTBUFF_REMOTE_APP_ID"); v != "" {
		cfg.Remote.AppID = v
	}
	if v := os.Getenv("BUILTBUFF_REMOTE_REST_KEY"); v != "" {
		cfg.Remote.RestKey = v
	}
}

func applyCoachDefaults(c *CoachConfig) {
	if c.BaseURL == "" {
		c.BaseURL = defaultCoachBaseURL
	}
	if c.Model == "" {
		c.Model = defaultCoachModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultCoachMaxTokens
	}
	if c.Temp == 0 {
		c.Temp = defaultCoachTemp
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
