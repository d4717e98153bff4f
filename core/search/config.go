package search

import "fmt"

// Method names accepted in Config.Method.
const (
	MethodEvolution  = "evolution"
	MethodNelderMead = "nelder-mead"
)

// Config defines the outer search parameters.
type Config struct {
	Method         string  `json:"method"`
	MaxEvaluations int     `json:"max_evaluations"`
	Population     int     `json:"population"`
	Mutation       float64 `json:"mutation"`
	Recombination  float64 `json:"recombination"`
	InitialStdDev  float64 `json:"initial_std_dev"`
	Seed           uint64  `json:"seed"`
}

// SetDefaults applies the parameters used by the original tuning runs.
func (c *Config) SetDefaults() {
	if c.Method == "" {
		c.Method = MethodEvolution
	}
	if c.MaxEvaluations <= 0 {
		c.MaxEvaluations = 500
	}
	if c.Population <= 0 {
		c.Population = 15
	}
	if c.Mutation == 0 {
		c.Mutation = 1.2
	}
	if c.Recombination == 0 {
		c.Recombination = 0.8
	}
	if c.InitialStdDev == 0 {
		c.InitialStdDev = 0.3
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate checks ranges.
func (c Config) Validate() error {
	switch c.Method {
	case MethodEvolution, MethodNelderMead:
	default:
		return fmt.Errorf("unknown search method %q", c.Method)
	}
	if c.Population < 4 && c.Method == MethodEvolution {
		return fmt.Errorf("population must be at least 4, got %d", c.Population)
	}
	if c.Mutation < 0 || c.Mutation >= 2 {
		return fmt.Errorf("mutation must be in [0,2), got %v", c.Mutation)
	}
	if c.Recombination < 0 || c.Recombination > 1 {
		return fmt.Errorf("recombination must be in [0,1], got %v", c.Recombination)
	}
	return nil
}
