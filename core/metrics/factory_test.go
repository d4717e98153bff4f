package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/libscan/core/factory"
	metrics "github.com/kilianp07/libscan/core/metrics"
)

type stubSink struct{ runs int }

func (s *stubSink) RecordRun(metrics.RunResult) error { s.runs++; return nil }

func init() {
	_ = metrics.RegisterMetricsSink("stub", func(map[string]any) (metrics.MetricsSink, error) {
		return &stubSink{}, nil
	})
}

func TestNewMetricsSink_Defaults(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	require.NoError(t, err)
	assert.IsType(t, metrics.NopSink{}, s)

	s, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "stub"}})
	require.NoError(t, err)
	assert.IsType(t, &stubSink{}, s)
}

func TestNewMetricsSink_Multi(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "stub"}, {Type: "stub"}})
	require.NoError(t, err)
	m, ok := s.(*metrics.MultiSink)
	require.True(t, ok, "expected MultiSink, got %T", s)
	assert.Len(t, m.Sinks, 2)
}

func TestNewMetricsSink_Unknown(t *testing.T) {
	_, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, metrics.SinkTypes(), "stub")
}
