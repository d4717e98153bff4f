package metrics

import (
	"time"

	"github.com/kilianp07/libscan/core/ranking"
)

// RunResult summarises one finished solve or tune run.
type RunResult struct {
	RunID     string
	Dataset   string
	Method    string
	Score     int
	Libraries int
	Books     int
	Trials    int
	Duration  time.Duration
	Weights   ranking.Weights
	Time      time.Time
}

// MetricsSink records run results for observability purposes.
type MetricsSink interface {
	RecordRun(res RunResult) error
}

// TrialEvent is one weight vector evaluated by the search.
type TrialEvent struct {
	Dataset string
	Method  string
	Trial   int
	Score   int
	Best    int
	Time    time.Time
}

// TrialRecorder records search trials.
type TrialRecorder interface {
	RecordTrial(ev TrialEvent) error
}

// ActivationEvent records a library that finished signup.
type ActivationEvent struct {
	Dataset   string
	LibraryID int
	Day       int
	QueueLen  int
	Time      time.Time
}

// ActivationRecorder records library activations.
type ActivationRecorder interface {
	RecordActivation(ev ActivationEvent) error
}

// RefreshEvent records a rebuild of the candidate ranking.
type RefreshEvent struct {
	Dataset    string
	Day        int
	Activated  int
	Candidates int
	Time       time.Time
}

// RefreshRecorder records ranking refreshes.
type RefreshRecorder interface {
	RecordRefresh(ev RefreshEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunResult) error              { return nil }
func (NopSink) RecordTrial(TrialEvent) error           { return nil }
func (NopSink) RecordActivation(ActivationEvent) error { return nil }
func (NopSink) RecordRefresh(RefreshEvent) error       { return nil }
