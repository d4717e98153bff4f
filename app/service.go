// Package app wires configuration, sinks and the run log around the
// scheduler and the weight search.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/libscan/config"
	"github.com/kilianp07/libscan/core/evaluator"
	coremetrics "github.com/kilianp07/libscan/core/metrics"
	coremon "github.com/kilianp07/libscan/core/monitoring"
	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/ranking"
	"github.com/kilianp07/libscan/core/runlog"
	"github.com/kilianp07/libscan/core/scheduler"
	"github.com/kilianp07/libscan/core/search"
	"github.com/kilianp07/libscan/infra/dataset"
	"github.com/kilianp07/libscan/infra/logger"
	"github.com/kilianp07/libscan/infra/metrics"
	"github.com/kilianp07/libscan/infra/monitoring"
	"github.com/kilianp07/libscan/internal/eventbus"
	"github.com/kilianp07/libscan/pkg/export"
)

// Run commands recorded in the run log.
const (
	CommandSolve = "solve"
	CommandTune  = "tune"
)

// MethodGreedy labels runs that used the configured weights as is.
const MethodGreedy = "greedy"

// Service runs solve, tune and evaluate requests.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  coremetrics.MetricsSink
	store runlog.Store
	now   func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithSink replaces the sinks built from configuration.
func WithSink(s coremetrics.MetricsSink) Option {
	return func(svc *Service) { svc.sink = s }
}

// WithStore replaces the run log opened from configuration.
func WithStore(s runlog.Store) Option {
	return func(svc *Service) { svc.store = s }
}

// WithClock sets the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.SetDefaults()
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Monitoring)
	if err != nil {
		return nil, err
	}
	coremon.Init(mon)
	svc := &Service{cfg: cfg, log: logger.New("service"), now: time.Now}
	for _, o := range opts {
		o(svc)
	}
	if svc.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, err
		}
		svc.sink = sink
	}
	if svc.store == nil {
		store, err := runlog.Open(cfg.RunLog)
		if err != nil {
			return nil, err
		}
		svc.store = store
	}
	return svc, nil
}

// Request names the instance to solve and where to write the solution.
// An empty OutputPath writes to the configured output directory.
type Request struct {
	InstancePath string
	OutputPath   string
}

// Outcome describes a finished solve or tune run.
type Outcome struct {
	RunID      string
	Dataset    string
	Method     string
	Score      int
	Weights    ranking.Weights
	Result     scheduler.Result
	Trials     int
	Duration   time.Duration
	OutputPath string
	ReportPath string
	// PreviousBest is the best score logged for the dataset before this run.
	PreviousBest    int
	HasPreviousBest bool
}

// Improved reports whether the run beat every logged run of its dataset.
func (o Outcome) Improved() bool { return !o.HasPreviousBest || o.Score > o.PreviousBest }

// Solve runs the scheduler once with the configured weights.
func (s *Service) Solve(ctx context.Context, req Request) (*Outcome, error) {
	inst, name, err := s.load(req.InstancePath)
	if err != nil {
		return nil, err
	}
	start := s.now()
	bus := eventbus.New()
	stop := s.collect(ctx, bus, name)
	sched := scheduler.New(inst, s.cfg.Scheduler,
		scheduler.WithLogger(logger.New("scheduler")),
		scheduler.WithEventBus(bus))
	var res scheduler.Result
	err = coremon.Guard(map[string]string{"dataset": name, "command": CommandSolve}, func() error {
		res = sched.Solve()
		return nil
	})
	stop()
	if err != nil {
		return nil, err
	}
	out := &Outcome{
		RunID:    uuid.NewString(),
		Dataset:  name,
		Method:   MethodGreedy,
		Weights:  s.cfg.Scheduler.Weights,
		Result:   res,
		Duration: s.now().Sub(start),
	}
	if err := s.finish(context.WithoutCancel(ctx), inst, CommandSolve, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tune searches ranking weights for the instance and keeps the best
// solution found. Cancelling ctx stops the search early; the best
// solution seen so far is still written.
func (s *Service) Tune(ctx context.Context, req Request) (*Outcome, error) {
	inst, name, err := s.load(req.InstancePath)
	if err != nil {
		return nil, err
	}
	searcher, err := search.New(s.cfg.Search, logger.New("search"))
	if err != nil {
		return nil, err
	}
	start := s.now()
	bus := eventbus.New()
	stop := s.collect(ctx, bus, name)
	// trials run quietly; only the final replay logs its activations
	sched := scheduler.New(inst, s.cfg.Scheduler)
	obj := search.NewObjective(inst, sched, bus)
	var (
		best search.Trial
		res  scheduler.Result
	)
	err = coremon.Guard(map[string]string{"dataset": name, "command": CommandTune}, func() error {
		var err error
		if best, err = search.Run(ctx, searcher, obj, s.cfg.Scheduler.Weights); err != nil {
			return err
		}
		final := scheduler.New(inst, s.cfg.Scheduler,
			scheduler.WithLogger(logger.New("scheduler")),
			scheduler.WithIndex(sched.Index()))
		res = final.SolveWith(best.Weights)
		return nil
	})
	stop()
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", name, err)
	}
	s.log.Infof("search %s finished after %d trials, best score %d", s.cfg.Search.Method, obj.Trials(), best.Score)
	out := &Outcome{
		RunID:    uuid.NewString(),
		Dataset:  name,
		Method:   s.cfg.Search.Method,
		Weights:  best.Weights,
		Result:   res,
		Trials:   obj.Trials(),
		Duration: s.now().Sub(start),
	}
	if err := s.finish(context.WithoutCancel(ctx), inst, CommandTune, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Evaluation is the verdict on an existing solution file.
type Evaluation struct {
	Dataset string
	Score   int
	// Invalid holds the first structural problem found, if any. Evaluate
	// still scores invalid solutions leniently.
	Invalid error
}

// Evaluate scores the solution at solutionPath against the instance.
func (s *Service) Evaluate(instancePath, solutionPath string) (*Evaluation, error) {
	inst, name, err := s.load(instancePath)
	if err != nil {
		return nil, err
	}
	sol, err := dataset.LoadSolutionFile(solutionPath)
	if err != nil {
		return nil, err
	}
	ev := &Evaluation{Dataset: name, Score: evaluator.Evaluate(inst, sol), Invalid: evaluator.Check(inst, sol)}
	if ev.Invalid != nil {
		s.log.Warnf("solution %s is invalid: %v", solutionPath, ev.Invalid)
	}
	return ev, nil
}

// Close flushes error reports and releases the run log.
func (s *Service) Close() error {
	coremon.Flush(2 * time.Second)
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *Service) load(path string) (*model.Instance, string, error) {
	inst, err := dataset.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	name := dataset.Name(path)
	s.log.Infof("loaded %s: %d books, %d libraries, %d days", name, inst.BookCount(), inst.LibraryCount(), inst.DayBudget)
	return inst, name, nil
}

// collect forwards bus events to the sink until the returned stop
// function is called. stop waits for buffered events and closes bus.
func (s *Service) collect(ctx context.Context, bus *eventbus.Bus, dataset string) func() {
	cctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := metrics.StartEventCollector(cctx, bus, s.sink, dataset)
	return func() {
		cancel()
		<-done
		bus.Close()
		if n := bus.Dropped(); n > 0 {
			s.log.Debugf("dropped %d progress events", n)
		}
	}
}

// finish checks the result, writes the solution and records the run.
func (s *Service) finish(ctx context.Context, inst *model.Instance, command string, req Request, out *Outcome) error {
	out.Score = evaluator.Evaluate(inst, out.Result.Solution)
	if out.Score != out.Result.Score {
		return fmt.Errorf("%s: scheduler reported %d but solution scores %d", out.Dataset, out.Result.Score, out.Score)
	}
	if err := evaluator.Check(inst, out.Result.Solution); err != nil {
		return fmt.Errorf("%s: %w", out.Dataset, err)
	}

	out.OutputPath = req.OutputPath
	if out.OutputPath == "" {
		out.OutputPath = s.cfg.Output.SolutionPath(out.Dataset)
	}
	if err := export.WriteSolutionFile(out.OutputPath, out.Result.Solution); err != nil {
		return err
	}
	if rp := s.cfg.Output.ReportPath(out.OutputPath); rp != "" {
		if err := s.writeReport(rp, export.NewReport(inst, out.Result)); err != nil {
			return err
		}
		out.ReportPath = rp
	}

	if s.store != nil {
		prev, ok, err := runlog.Best(ctx, s.store, out.Dataset)
		if err != nil {
			s.log.Warnf("read run log: %v", err)
		}
		out.PreviousBest, out.HasPreviousBest = prev.Score, ok
	}

	now := s.now()
	books := out.Result.Solution.BookCount()
	if err := s.sink.RecordRun(coremetrics.RunResult{
		RunID:     out.RunID,
		Dataset:   out.Dataset,
		Method:    out.Method,
		Score:     out.Score,
		Libraries: len(out.Result.Activations),
		Books:     books,
		Trials:    out.Trials,
		Duration:  out.Duration,
		Weights:   out.Weights,
		Time:      now,
	}); err != nil {
		s.log.Warnf("record run: %v", err)
	}
	if s.store != nil {
		rec := runlog.RunRecord{
			ID:         out.RunID,
			Timestamp:  now,
			Dataset:    out.Dataset,
			Command:    command,
			Method:     out.Method,
			Score:      out.Score,
			Libraries:  len(out.Result.Activations),
			Books:      books,
			Trials:     out.Trials,
			DurationMS: out.Duration.Milliseconds(),
			Weights:    out.Weights,
			Output:     out.OutputPath,
		}
		if err := s.store.Append(ctx, rec); err != nil {
			return fmt.Errorf("append run log: %w", err)
		}
	}
	s.log.Infof("%s %s: score %d, %d libraries, %d books, written to %s",
		command, out.Dataset, out.Score, len(out.Result.Activations), books, out.OutputPath)
	return nil
}

func (s *Service) writeReport(path string, entries []export.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch s.cfg.Output.Report {
	case config.ReportCSV:
		err = export.WriteCSV(f, entries)
	default:
		err = export.WriteJSON(f, entries)
	}
	return errors.Join(err, f.Close())
}
