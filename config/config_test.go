package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/libscan/core/ranking"
	"github.com/kilianp07/libscan/core/runlog"
	"github.com/kilianp07/libscan/core/scheduler"
	"github.com/kilianp07/libscan/core/search"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `scheduler:
  refresh_target: 20
  weights:
    score: 0.7
    rarity: 0.3
search:
  method: "nelder-mead"
  max_evaluations: 40
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
    - type: "mqtt"
      conf:
        broker: "tcp://localhost:1883"
        publish_trials: true
logging:
  level: "debug"
runlog:
  backend: "sqlite"
  path: "runs.db"
output:
  dir: "solutions"
  report: "csv"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"refresh_target", cfg.Scheduler.RefreshTarget, 20},
		{"weights.score", cfg.Scheduler.Weights.Score, 0.7},
		{"weights.rarity", cfg.Scheduler.Weights.Rarity, 0.3},
		{"search.method", cfg.Search.Method, search.MethodNelderMead},
		{"search.max_evaluations", cfg.Search.MaxEvaluations, 40},
		{"search.population default", cfg.Search.Population, 15},
		{"metrics.sinks", len(cfg.Metrics.Sinks), 2},
		{"metrics.sinks[1].type", cfg.Metrics.Sinks[1].Type, "mqtt"},
		{"metrics.sinks[1].broker", cfg.Metrics.Sinks[1].Conf["broker"], "tcp://localhost:1883"},
		{"metrics.prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"runlog.backend", cfg.RunLog.Backend, runlog.BackendSQLite},
		{"output.dir", cfg.Output.Dir, "solutions"},
		{"output.report", cfg.Output.Report, ReportCSV},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"scheduler":{"refresh_target":5},"logging":{"level":"warn"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Scheduler.RefreshTarget)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, ranking.DefaultWeights(), cfg.Scheduler.Weights)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Scheduler, cfg.Scheduler)
	assert.Equal(t, scheduler.DefaultRefreshTarget, cfg.Scheduler.RefreshTarget)
	assert.Equal(t, search.MethodEvolution, cfg.Search.Method)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, runlog.BackendJSONL, cfg.RunLog.Backend)
	assert.Equal(t, filepath.Join("out", "a_example.txt"), cfg.Output.SolutionPath("a_example"))
	assert.Empty(t, cfg.Output.ReportPath("out/a_example.txt"))
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Empty(t, cfg.API.Token)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "scheduler:\n  refresh_target: 20\n")
	t.Setenv("K_SCHEDULER__REFRESH_TARGET", "7")
	t.Setenv("K_OUTPUT__REPORT", "json")
	t.Setenv("K_API__TOKEN", "s3cret")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scheduler.RefreshTarget)
	assert.Equal(t, "s3cret", cfg.API.Token)
	assert.Equal(t, filepath.Join("out", "a.report.json"), cfg.Output.ReportPath(filepath.Join("out", "a.txt")))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "x = 1"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "logging:\n  level: loud\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "search:\n  method: annealing\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "runlog:\n  backend: postgres\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "output:\n  report: xml\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
