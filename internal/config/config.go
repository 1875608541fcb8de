package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/thatsimonsguy/sensor-dashboard/internal/logging"
)

type Config struct {
	LogLevel string `json:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `json:"log_file" env:"LOG_FILE"`

	ListenAddr string `json:"listen_addr" env:"LISTEN_ADDR" env-default:"0.0.0.0"`
	Port       int    `json:"port" env:"PORT" env-default:"8080"`

	TickIntervalSeconds int  `json:"tick_interval_seconds" env:"TICK_INTERVAL_SECONDS" env-default:"2"`
	SimulatorPaused     bool `json:"simulator_paused" env:"SIMULATOR_PAUSED"`

	// Datadog metrics
	EnableDatadog bool     `json:"enable_datadog" env:"ENABLE_DATADOG"`
	DDAgentAddr   string   `json:"dd_agent_addr" env:"DD_AGENT_ADDR" env-default:"127.0.0.1:8125"`
	DDNamespace   string   `json:"dd_namespace" env:"DD_NAMESPACE" env-default:"dashboard."`
	DDTags        []string `json:"dd_tags" env:"DD_TAGS" env-separator:","`

	// status change notifications, disabled when the topic is empty
	NtfyTopic string `json:"ntfy_topic" env:"NTFY_TOPIC"`
	NtfyURL   string `json:"ntfy_url" env:"NTFY_URL" env-default:"https://ntfy.sh"`
}

// Load reads the JSON config at path and applies environment overrides. An
// empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if c.TickIntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval_seconds must be positive, got %d", c.TickIntervalSeconds))
	}
	if c.EnableDatadog && strings.TrimSpace(c.DDAgentAddr) == "" {
		errs = append(errs, errors.New("dd_agent_addr is required when enable_datadog is set"))
	}
	if c.NtfyTopic != "" && strings.TrimSpace(c.NtfyURL) == "" {
		errs = append(errs, errors.New("ntfy_url is required when ntfy_topic is set"))
	}

	return errors.Join(errs...)
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ListenAddr, c.Port)
}
