package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnvName is the environment variable that points to the configuration file.
const ConfigFileEnvName = "RAILFLOW_CONFIG"

type Config struct {
	Core struct {
		// CollectAuditData enables the audit trail of all gate transitions and train actions.
		CollectAuditData bool `yaml:"collect_audit_data"`
		// LoginDelay simulates the authentication round trip of the control system.
		LoginDelay time.Duration `yaml:"login_delay"`
		// EventQueueSize is the buffer size of each message bus subscriber queue.
		EventQueueSize int `yaml:"event_queue_size"`
	} `yaml:"core"`

	Advanced struct {
		LogLevel  string `yaml:"log_level"`
		LogPretty bool   `yaml:"log_pretty"`
		LogJson   bool   `yaml:"log_json"`
	} `yaml:"advanced"`

	Metrics MetricsConfig `yaml:"metrics"`

	Database DatabaseConfig `yaml:"database"`

	Web WebConfig `yaml:"web"`
}

// MetricsConfig contains the configuration of the prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled starts a separate metrics web server.
	Enabled bool `yaml:"enabled"`
	// ListeningAddress is the address of the metrics web server.
	ListeningAddress string `yaml:"listening_address"`
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Core.CollectAuditData = true
	cfg.Core.LoginDelay = 1 * time.Second
	cfg.Core.EventQueueSize = 100

	cfg.Advanced.LogLevel = "info"
	cfg.Advanced.LogPretty = false
	cfg.Advanced.LogJson = false

	cfg.Metrics = MetricsConfig{
		Enabled:          false,
		ListeningAddress: ":8787",
	}

	cfg.Database = DatabaseConfig{
		Type:               DatabaseSQLite,
		DSN:                "data/railflow.db",
		SlowQueryThreshold: 0,
	}

	cfg.Web = WebConfig{
		RequestLogging:    false,
		ExposeHostInfo:    false,
		ExternalUrl:       "http://localhost:8888",
		ListeningAddress:  ":8888",
		SessionIdentifier: "railflow_session",
		SessionLifetime:   12 * time.Hour,
		SiteTitle:         "RailFlow AI",
		SiteCompanyName:   "Indian Railways",
		LoginRateLimit:    1,
		LoginRateBurst:    5,
	}

	return cfg
}

// GetConfig returns the default configuration, overridden by the values of the configuration file.
// The file name is read from the RAILFLOW_CONFIG environment variable and defaults to config.yml.
// A missing file is not an error.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgFileName := "config.yml"
	if envCfgFileName := os.Getenv(ConfigFileEnvName); envCfgFileName != "" {
		cfgFileName = envCfgFileName
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config from yaml: %w", err)
		}
		slog.Warn("config file not found, using defaults", "file", cfgFileName)
	}

	cfg.Web.Sanitize()

	return cfg, nil
}

// loadConfigFile reads the YAML file, expands ${VAR} references and decodes it into cfg.
func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return nil
}
