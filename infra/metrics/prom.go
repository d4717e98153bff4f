package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/libscan/core/metrics"
)

// DefaultDurationBuckets bound the solve duration histogram, in seconds.
var DefaultDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300}

// PromSink records runs and search progress in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	score       *prometheus.GaugeVec
	best        *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
	trials      *prometheus.CounterVec
	trialBest   *prometheus.GaugeVec
	activations *prometheus.CounterVec
	refreshes   *prometheus.CounterVec

	mu      sync.Mutex
	bestSet map[string]int
}

// NewPromSink registers the metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer and nil
// buckets to DefaultDurationBuckets. Collectors already registered by a
// previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer, buckets []float64) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if len(buckets) == 0 {
		buckets = DefaultDurationBuckets
	}
	s := &PromSink{bestSet: make(map[string]int)}
	var err error
	if s.runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "libscan_runs_total",
		Help: "Number of finished solver runs",
	}, []string{"dataset", "method"})); err != nil {
		return nil, err
	}
	if s.score, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "libscan_run_score",
		Help: "Score of the latest run",
	}, []string{"dataset", "method"})); err != nil {
		return nil, err
	}
	if s.best, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "libscan_best_score",
		Help: "Best score recorded for a dataset",
	}, []string{"dataset"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "libscan_run_duration_seconds",
		Help:    "Wall time of solver runs",
		Buckets: buckets,
	}, []string{"method"})); err != nil {
		return nil, err
	}
	if s.trials, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "libscan_search_trials_total",
		Help: "Weight vectors evaluated by the search",
	}, []string{"dataset", "method"})); err != nil {
		return nil, err
	}
	if s.trialBest, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "libscan_search_best_score",
		Help: "Best score found so far by the running search",
	}, []string{"dataset", "method"})); err != nil {
		return nil, err
	}
	if s.activations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "libscan_library_activations_total",
		Help: "Libraries that completed signup",
	}, []string{"dataset"})); err != nil {
		return nil, err
	}
	if s.refreshes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "libscan_ranking_refreshes_total",
		Help: "Rebuilds of the candidate library ranking",
	}, []string{"dataset"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the run counters, the latest score and the best score.
func (s *PromSink) RecordRun(res coremetrics.RunResult) error {
	s.runs.WithLabelValues(res.Dataset, res.Method).Inc()
	s.score.WithLabelValues(res.Dataset, res.Method).Set(float64(res.Score))
	s.duration.WithLabelValues(res.Method).Observe(res.Duration.Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.bestSet[res.Dataset]; !ok || res.Score > prev {
		s.bestSet[res.Dataset] = res.Score
		s.best.WithLabelValues(res.Dataset).Set(float64(res.Score))
	}
	return nil
}

// RecordTrial counts the trial and tracks the running best.
func (s *PromSink) RecordTrial(ev coremetrics.TrialEvent) error {
	s.trials.WithLabelValues(ev.Dataset, ev.Method).Inc()
	s.trialBest.WithLabelValues(ev.Dataset, ev.Method).Set(float64(ev.Best))
	return nil
}

// RecordActivation counts library activations.
func (s *PromSink) RecordActivation(ev coremetrics.ActivationEvent) error {
	s.activations.WithLabelValues(ev.Dataset).Inc()
	return nil
}

// RecordRefresh counts ranking refreshes.
func (s *PromSink) RecordRefresh(ev coremetrics.RefreshEvent) error {
	s.refreshes.WithLabelValues(ev.Dataset).Inc()
	return nil
}
