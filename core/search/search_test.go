package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/libscan/core/evaluator"
	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/ranking"
	"github.com/kilianp07/libscan/core/scheduler"
	"github.com/kilianp07/libscan/internal/eventbus"
)

func exampleInstance() *model.Instance {
	return &model.Instance{
		DayBudget: 7,
		Books:     []model.Book{{ID: 0, Score: 1}, {ID: 1, Score: 2}, {ID: 2, Score: 3}, {ID: 3, Score: 6}, {ID: 4, Score: 5}, {ID: 5, Score: 4}},
		Libraries: []model.Library{
			{ID: 0, Books: []int{0, 1, 2, 3, 4}, SignupDays: 1, Throughput: 2},
			{ID: 1, Books: []int{0, 2, 3}, SignupDays: 1, Throughput: 1},
		},
	}
}

func TestClip(t *testing.T) {
	nan := 0.0
	nan = nan / nan
	assert.Equal(t, []float64{0, 1, 0.5, 0}, Clip([]float64{-3, 7, 0.5, nan}))
}

func TestObjectiveTracksBest(t *testing.T) {
	in := exampleInstance()
	obj := NewObjective(in, scheduler.New(in, scheduler.Config{}), nil)
	_, ok := obj.Best()
	assert.False(t, ok)

	f := obj.Eval(ranking.DefaultWeights().Vector())
	assert.Equal(t, -17.0, f)
	best, ok := obj.Best()
	require.True(t, ok)
	assert.Equal(t, 17, best.Score)
	assert.Equal(t, best.Score, evaluator.Evaluate(in, best.Solution))
	assert.Equal(t, 1, obj.Trials())
}

func TestEvolutionRespectsBudget(t *testing.T) {
	in := exampleInstance()
	bus := eventbus.NewWithBuffer(128)
	sub := bus.Subscribe()
	obj := NewObjective(in, scheduler.New(in, scheduler.Config{}), bus)
	s, err := New(Config{Method: MethodEvolution, MaxEvaluations: 30, Population: 6}, nil)
	require.NoError(t, err)

	best, err := Run(context.Background(), s, obj, ranking.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 30, obj.Trials())
	assert.Equal(t, 17, best.Score)
	assert.Empty(t, best.Solution.Duplicates())

	bus.Close()
	n := 0
	for range sub {
		n++
	}
	assert.Equal(t, 30, n)
}

func TestEvolutionDeterministic(t *testing.T) {
	in := exampleInstance()
	run := func() Trial {
		obj := NewObjective(in, scheduler.New(in, scheduler.Config{}), nil)
		s, err := New(Config{MaxEvaluations: 20, Population: 5, Seed: 42}, nil)
		require.NoError(t, err)
		best, err := Run(context.Background(), s, obj, ranking.DefaultWeights())
		require.NoError(t, err)
		return best
	}
	assert.Equal(t, run(), run())
}

func TestNelderMead(t *testing.T) {
	in := exampleInstance()
	obj := NewObjective(in, scheduler.New(in, scheduler.Config{}), nil)
	s, err := New(Config{Method: MethodNelderMead, MaxEvaluations: 40}, nil)
	require.NoError(t, err)

	best, err := Run(context.Background(), s, obj, ranking.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 17, best.Score)
	assert.LessOrEqual(t, obj.Trials(), 41)
}

func TestRunCancelled(t *testing.T) {
	in := exampleInstance()
	obj := NewObjective(in, scheduler.New(in, scheduler.Config{}), nil)
	s, err := New(Config{}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, s, obj, ranking.DefaultWeights())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MethodEvolution, cfg.Method)

	bad := cfg
	bad.Method = "annealing"
	assert.Error(t, bad.Validate())
	bad = cfg
	bad.Population = 3
	assert.Error(t, bad.Validate())
	bad = cfg
	bad.Mutation = 2.5
	assert.Error(t, bad.Validate())
	_, err := New(Config{Method: "annealing"}, nil)
	assert.Error(t, err)
}
