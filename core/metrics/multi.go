package metrics

import "errors"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the result to every sink. A failing sink does not
// prevent the others from receiving it; errors are joined.
func (m *MultiSink) RecordRun(res RunResult) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordRun(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordTrial forwards trials to sinks implementing TrialRecorder.
func (m *MultiSink) RecordTrial(ev TrialEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(TrialRecorder); ok {
			if err := rec.RecordTrial(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordActivation forwards activations to sinks implementing ActivationRecorder.
func (m *MultiSink) RecordActivation(ev ActivationEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(ActivationRecorder); ok {
			if err := rec.RecordActivation(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordRefresh forwards refreshes to sinks implementing RefreshRecorder.
func (m *MultiSink) RecordRefresh(ev RefreshEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(RefreshRecorder); ok {
			if err := rec.RecordRefresh(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
