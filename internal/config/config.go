package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "STANDINGS_CONFIG"
	dataDirEnv       = "STANDINGS_DATA_DIR"
	storageDriverEnv = "STANDINGS_STORAGE_DRIVER"
	logLevelEnv      = "STANDINGS_LOG_LEVEL"
	userAgentEnv     = "STANDINGS_USER_AGENT"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Storage  StorageConfig  `yaml:"storage"`
	Sources  SourcesConfig  `yaml:"sources"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=error warn warning info debug"`
}

// FetchConfig controls the upstream HTTP client.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent   string        `yaml:"userAgent" validate:"required"`
	PoliteDelay time.Duration `yaml:"politeDelay" validate:"gte=0"`
}

// StorageConfig describes where season histories live.
type StorageConfig struct {
	Driver     string `yaml:"driver" validate:"oneof=json sqlite"`
	DataDir    string `yaml:"dataDir" validate:"required_if=Driver json"`
	Dataset    string `yaml:"dataset" validate:"required"`
	SQLitePath string `yaml:"sqlitePath" validate:"required_if=Driver sqlite"`
}

// SourcesConfig groups per-source endpoints.
type SourcesConfig struct {
	FootMercato   FootMercatoConfig   `yaml:"footmercato"`
	Transfermarkt TransfermarktConfig `yaml:"transfermarkt"`
}

// FootMercatoConfig maps a view name (general, home, away) to its page.
type FootMercatoConfig struct {
	Views map[string]string `yaml:"views" validate:"dive,url"`
}

// TransfermarktConfig holds the form-table endpoint.
type TransfermarktConfig struct {
	BaseURL string `yaml:"baseUrl" validate:"omitempty,url"`
}

// DefaultsConfig holds values used when the command line omits them.
type DefaultsConfig struct {
	Source string `yaml:"source" validate:"omitempty,oneof=footmercato transfermarkt"`
	Season string `yaml:"season"`
}

// ScheduleConfig drives the watch command.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gte=0"`
}

// Load reads YAML configuration (path, else $STANDINGS_CONFIG, if present)
// and applies environment overrides.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
				log.Printf("config: cannot merge %s: %v (falling back to defaults)", path, err)
				cfg = defaultConfig()
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate checks the merged configuration before anything is wired.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.Storage.DataDir = v
	}

	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(userAgentEnv); v != "" {
		c.Fetch.UserAgent = v
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Fetch: FetchConfig{
			Timeout:     15 * time.Second,
			UserAgent:   "bf_foot_scraper/0.1",
			PoliteDelay: 1200 * time.Millisecond,
		},
		Storage: StorageConfig{
			Driver:     DriverJSON,
			DataDir:    "data",
			Dataset:    "standings",
			SQLitePath: "data/history.db",
		},
		Sources: SourcesConfig{
			FootMercato: FootMercatoConfig{
				Views: map[string]string{
					"general": "https://www.footmercato.net/france/ligue-1/classement",
					"home":    "https://www.footmercato.net/france/ligue-1/classement/domicile",
					"away":    "https://www.footmercato.net/france/ligue-1/classement/exterieur",
				},
			},
			Transfermarkt: TransfermarktConfig{
				BaseURL: "https://www.transfermarkt.fr/ligue-1/formtabelle/wettbewerb/FR1",
			},
		},
		Defaults: DefaultsConfig{Source: "footmercato"},
		Schedule: ScheduleConfig{Interval: 6 * time.Hour},
	}
}
