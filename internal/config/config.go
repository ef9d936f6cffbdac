package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Oracle    OracleConfig    `yaml:"oracle"`
	Assistant AssistantConfig `yaml:"assistant"`
	Subjects  []SubjectSeed   `yaml:"subjects"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects between the HTTP API and MCP stdio mode.
type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// OracleConfig configures the external generation oracle. The API key is
// taken from ANTHROPIC_API_KEY, never from the config file.
type OracleConfig struct {
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// AssistantConfig bounds the AI-assisted edit path.
type AssistantConfig struct {
	RateLimit     int           `yaml:"rate_limit"`
	RateWindow    time.Duration `yaml:"rate_window"`
	PendingTTL    time.Duration `yaml:"pending_ttl"`
	MaxMessageLen int           `yaml:"max_message_len"`
}

// SubjectSeed describes a subject created on first startup.
type SubjectSeed struct {
	Name          string `yaml:"name"`
	TotalLectures int    `yaml:"total_lectures"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		DB: DBConfig{
			Path: "attendease.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Oracle: OracleConfig{
			Model:     "claude-haiku-4-5-20251001",
			MaxTokens: 1024,
			Timeout:   20 * time.Second,
		},
		Assistant: AssistantConfig{
			RateLimit:     20,
			RateWindow:    24 * time.Hour,
			PendingTTL:    5 * time.Minute,
			MaxMessageLen: 500,
		},
		Subjects: DefaultSubjects(),
	}

	if path := os.Getenv("ATTENDEASE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ATTENDEASE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ATTENDEASE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATTENDEASE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("ATTENDEASE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("ATTENDEASE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("ATTENDEASE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if model := os.Getenv("ATTENDEASE_ORACLE_MODEL"); model != "" {
		cfg.Oracle.Model = model
	}
	if authStr := os.Getenv("ATTENDEASE_AUTH_ENABLED"); authStr != "" {
		enabled, err := strconv.ParseBool(authStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATTENDEASE_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}

	if cfg.Transport.Mode != "http" && cfg.Transport.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid transport mode %q", cfg.Transport.Mode)
	}

	return cfg, nil
}

// DefaultSubjects mirrors the stock eight-subject term setup.
func DefaultSubjects() []SubjectSeed {
	seeds := make([]SubjectSeed, 0, 8)
	for i := 1; i <= 8; i++ {
		seeds = append(seeds, SubjectSeed{
			Name:          fmt.Sprintf("Subject %d", i),
			TotalLectures: 40,
		})
	}
	return seeds
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
