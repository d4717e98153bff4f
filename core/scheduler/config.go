package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/libscan/core/ranking"
)

// DefaultRefreshTarget is the number of candidate re-rankings aimed for
// over a whole run when none is configured.
const DefaultRefreshTarget = 100

// Config defines scheduling parameters loaded from configuration.
type Config struct {
	// RefreshTarget K spreads K re-rankings over the run: the queue is
	// rebuilt every ceil(L/K) activations.
	RefreshTarget int             `json:"refresh_target" yaml:"refresh_target"`
	Weights       ranking.Weights `json:"weights" yaml:"weights"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.RefreshTarget <= 0 {
		c.RefreshTarget = DefaultRefreshTarget
	}
	if c.Weights.IsZero() {
		c.Weights = ranking.DefaultWeights()
	}
}

// Validate rejects negative weights.
func (c Config) Validate() error {
	for i, v := range c.Weights.Vector() {
		if v < 0 {
			return fmt.Errorf("weight %d is negative: %v", i, v)
		}
	}
	if c.RefreshTarget < 0 {
		return fmt.Errorf("refresh_target must not be negative")
	}
	return nil
}

// RefreshInterval returns how many activations separate two re-rankings
// for an instance with libraries libraries.
func (c Config) RefreshInterval(libraries int) int {
	k := c.RefreshTarget
	if k <= 0 {
		k = DefaultRefreshTarget
	}
	n := (libraries + k - 1) / k
	if n < 1 {
		return 1
	}
	return n
}

// LoadConfig loads Config from a JSON or YAML file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()
	return DecodeConfig(f, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// DecodeConfig reads from r to decode a Config.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", format)
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}
