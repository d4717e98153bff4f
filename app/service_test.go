package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/libscan/config"
	coremetrics "github.com/kilianp07/libscan/core/metrics"
	"github.com/kilianp07/libscan/core/runlog"
	"github.com/kilianp07/libscan/core/search"
	"github.com/kilianp07/libscan/infra/dataset"
)

const exampleInstance = "6 2 7\n1 2 3 6 5 4\n5 1 2\n0 1 2 3 4\n3 1 1\n0 2 3\n"

type recordingSink struct {
	mu          sync.Mutex
	runs        []coremetrics.RunResult
	activations int
	trials      int
}

func (r *recordingSink) RecordRun(res coremetrics.RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, res)
	return nil
}

func (r *recordingSink) RecordActivation(coremetrics.ActivationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activations++
	return nil
}

func (r *recordingSink) RecordTrial(coremetrics.TrialEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trials++
	return nil
}

func setup(t *testing.T, mutate func(*config.Config)) (*Service, *recordingSink, string, string) {
	t.Helper()
	dir := t.TempDir()
	inst := filepath.Join(dir, "a_example.txt")
	require.NoError(t, os.WriteFile(inst, []byte(exampleInstance), 0o644))

	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.RunLog.Path = filepath.Join(dir, "runs.jsonl")
	if mutate != nil {
		mutate(cfg)
	}
	sink := &recordingSink{}
	svc, err := New(cfg, WithSink(sink))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, sink, inst, dir
}

func TestSolve(t *testing.T) {
	svc, sink, inst, dir := setup(t, func(c *config.Config) { c.Output.Report = config.ReportCSV })

	out, err := svc.Solve(context.Background(), Request{InstancePath: inst})
	require.NoError(t, err)
	assert.Equal(t, "a_example", out.Dataset)
	assert.Equal(t, 17, out.Score)
	assert.Equal(t, MethodGreedy, out.Method)
	assert.NotEmpty(t, out.RunID)
	assert.True(t, out.Improved())

	assert.Equal(t, filepath.Join(dir, "out", "a_example.txt"), out.OutputPath)
	data, err := os.ReadFile(out.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "2\n0 4\n3 4 1 0\n1 1\n2\n", string(data))
	assert.FileExists(t, filepath.Join(dir, "out", "a_example.report.csv"))

	require.Len(t, sink.runs, 1)
	assert.Equal(t, 17, sink.runs[0].Score)
	assert.Equal(t, 5, sink.runs[0].Books)
	assert.Equal(t, 2, sink.activations)

	again, err := svc.Solve(context.Background(), Request{InstancePath: inst, OutputPath: filepath.Join(dir, "second.txt")})
	require.NoError(t, err)
	assert.True(t, again.HasPreviousBest)
	assert.Equal(t, 17, again.PreviousBest)
	assert.False(t, again.Improved())

	store, err := runlog.NewJSONLStore(filepath.Join(dir, "runs.jsonl"), 0, 0, 0)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	recs, err := store.Query(context.Background(), runlog.Query{Dataset: "a_example", Command: CommandSolve})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestTune(t *testing.T) {
	svc, sink, inst, _ := setup(t, func(c *config.Config) {
		c.Search.Method = search.MethodNelderMead
		c.Search.MaxEvaluations = 20
		c.RunLog.Backend = runlog.BackendNone
	})

	out, err := svc.Tune(context.Background(), Request{InstancePath: inst})
	require.NoError(t, err)
	assert.Equal(t, 17, out.Score)
	assert.Equal(t, search.MethodNelderMead, out.Method)
	assert.Positive(t, out.Trials)
	assert.Equal(t, out.Trials, sink.trials)
	require.Len(t, sink.runs, 1)
	assert.Equal(t, out.Trials, sink.runs[0].Trials)
	assert.Zero(t, sink.activations)
}

func TestEvaluate(t *testing.T) {
	svc, _, inst, dir := setup(t, nil)

	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("2\n0 4\n3 4 1 0\n1 1\n2\n"), 0o644))
	ev, err := svc.Evaluate(inst, good)
	require.NoError(t, err)
	assert.Equal(t, 17, ev.Score)
	assert.NoError(t, ev.Invalid)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("2\n0 1\n3\n0 1\n4\n"), 0o644))
	ev, err = svc.Evaluate(inst, bad)
	require.NoError(t, err)
	assert.Error(t, ev.Invalid)
}

func TestSolveMalformedInstance(t *testing.T) {
	svc, _, _, dir := setup(t, nil)
	path := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(path, []byte("2 1 3\n1\n"), 0o644))
	_, err := svc.Solve(context.Background(), Request{InstancePath: path})
	assert.ErrorIs(t, err, dataset.ErrMalformed)
}
