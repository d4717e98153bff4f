package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	runs, trials, activations, refreshes int
	err                                  error
}

func (r *recordSink) RecordRun(RunResult) error { r.runs++; return r.err }

func (r *recordSink) RecordTrial(TrialEvent) error { r.trials++; return r.err }

func (r *recordSink) RecordActivation(ActivationEvent) error { r.activations++; return r.err }

func (r *recordSink) RecordRefresh(RefreshEvent) error { r.refreshes++; return r.err }

type runOnly struct{ runs int }

func (r *runOnly) RecordRun(RunResult) error { r.runs++; return nil }

func TestMultiSink_Forwards(t *testing.T) {
	s1, s2 := &recordSink{}, &recordSink{}
	plain := &runOnly{}
	m := NewMultiSink(s1, s2, plain)

	require.NoError(t, m.RecordRun(RunResult{Score: 3}))
	require.NoError(t, m.RecordTrial(TrialEvent{}))
	require.NoError(t, m.RecordActivation(ActivationEvent{}))
	require.NoError(t, m.RecordRefresh(RefreshEvent{}))

	for _, s := range []*recordSink{s1, s2} {
		assert.Equal(t, 1, s.runs)
		assert.Equal(t, 1, s.trials)
		assert.Equal(t, 1, s.activations)
		assert.Equal(t, 1, s.refreshes)
	}
	assert.Equal(t, 1, plain.runs)
}

func TestMultiSink_ErrorDoesNotStopFanout(t *testing.T) {
	boom := errors.New("boom")
	bad, good := &recordSink{err: boom}, &recordSink{}
	m := NewMultiSink(bad, good)

	err := m.RecordRun(RunResult{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, good.runs)
}
