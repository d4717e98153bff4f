package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilianp07/libscan/core/logger"
	"github.com/kilianp07/libscan/core/ranking"
)

// Searcher minimises an Objective starting from x0.
type Searcher interface {
	Search(ctx context.Context, obj *Objective, x0 []float64) error
}

// ErrNoTrial is returned when the search was stopped before evaluating any
// weight vector.
var ErrNoTrial = errors.New("search evaluated no weights")

// New returns the Searcher selected by cfg.
func New(cfg Config, log logger.Logger) (Searcher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	switch cfg.Method {
	case MethodNelderMead:
		return &NelderMead{MaxEvaluations: cfg.MaxEvaluations, log: log}, nil
	case MethodEvolution:
		return &Evolution{
			MaxEvaluations: cfg.MaxEvaluations,
			Population:     cfg.Population,
			Mutation:       cfg.Mutation,
			Recombination:  cfg.Recombination,
			InitialStdDev:  cfg.InitialStdDev,
			Seed:           cfg.Seed,
			log:            log,
		}, nil
	}
	return nil, fmt.Errorf("unknown search method %q", cfg.Method)
}

// Run searches from start and returns the best trial. Cancelling ctx stops
// the search between trials.
func Run(ctx context.Context, s Searcher, obj *Objective, start ranking.Weights) (Trial, error) {
	obj.method = methodName(s)
	err := s.Search(ctx, obj, start.Vector())
	best, ok := obj.Best()
	if !ok {
		if err != nil {
			return Trial{}, err
		}
		return Trial{}, ErrNoTrial
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return best, err
	}
	return best, nil
}

func methodName(s Searcher) string {
	switch s.(type) {
	case *NelderMead:
		return MethodNelderMead
	case *Evolution:
		return MethodEvolution
	default:
		return fmt.Sprintf("%T", s)
	}
}
