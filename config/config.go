package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/libscan/core/metrics"
	"github.com/kilianp07/libscan/core/runlog"
	"github.com/kilianp07/libscan/core/scheduler"
	"github.com/kilianp07/libscan/core/search"
	"github.com/kilianp07/libscan/infra/monitoring"
)

// EnvPrefix marks environment variables that override file settings.
// Nested keys are separated by "__", e.g. K_SCHEDULER__REFRESH_TARGET.
const EnvPrefix = "K_"

type Config struct {
	Scheduler  scheduler.Config  `json:"scheduler"`
	Search     search.Config     `json:"search"`
	Metrics    metrics.Config    `json:"metrics"`
	Logging    LoggingConfig     `json:"logging"`
	RunLog     runlog.Config     `json:"runlog"`
	Output     OutputConfig      `json:"output"`
	Monitoring monitoring.Config `json:"monitoring"`
	API        APIConfig         `json:"api"`
}

// Load reads path, applies environment overrides and defaults, and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills unset fields in every section.
func (c *Config) SetDefaults() {
	c.Scheduler.SetDefaults()
	c.Search.SetDefaults()
	c.Logging.SetDefaults()
	c.RunLog.SetDefaults()
	c.Output.SetDefaults()
	c.API.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Scheduler.Validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.RunLog.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}
