// Package scenarios runs small, hand-written instances end to end and
// checks the scheduler against known outcomes.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/scheduler"
)

type LibraryDef struct {
	Signup     int   `yaml:"signup"`
	Throughput int   `yaml:"throughput"`
	Books      []int `yaml:"books"`
}

type Expected struct {
	Score    int `yaml:"score"`
	MinScore int `yaml:"min_score,omitempty"`
	// Activations is checked only when set.
	Activations *int `yaml:"activations,omitempty"`
}

type Scenario struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Days        int              `yaml:"days"`
	Books       []int            `yaml:"books"`
	Libraries   []LibraryDef     `yaml:"libraries"`
	Scheduler   scheduler.Config `yaml:"scheduler,omitempty"`
	Expected    Expected         `yaml:"expected"`
}

// Instance converts the definition into a validated model.Instance.
func (sc *Scenario) Instance() (*model.Instance, error) {
	in := &model.Instance{DayBudget: sc.Days}
	for i, s := range sc.Books {
		in.Books = append(in.Books, model.Book{ID: i, Score: s})
	}
	for i, l := range sc.Libraries {
		in.Libraries = append(in.Libraries, model.Library{
			ID:         i,
			Books:      l.Books,
			SignupDays: l.Signup,
			Throughput: l.Throughput,
		})
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return in, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	sc.Scheduler.SetDefaults()
	if err := sc.Scheduler.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return &sc, nil
}
