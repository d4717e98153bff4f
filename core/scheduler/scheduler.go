package scheduler

import (
	"fmt"

	"github.com/kilianp07/libscan/core/events"
	"github.com/kilianp07/libscan/core/logger"
	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/ranking"
	"github.com/kilianp07/libscan/internal/eventbus"
)

// Activation records when a library signed up and when it started to scan.
type Activation struct {
	LibraryID    int `json:"library_id"`
	SignupDay    int `json:"signup_day"`
	ActivatedDay int `json:"activated_day"`
}

// Result is the outcome of one Solve call.
type Result struct {
	Solution    model.Solution
	Score       int
	Activations []Activation
	Refreshes   int
	Skipped     int
}

// Scheduler builds solutions for one instance. The instance and its
// occurrence index are shared read-only; every Solve call owns its own
// mutable per-library state, so a Scheduler may be reused across trials.
type Scheduler struct {
	inst  *model.Instance
	index model.OccurrenceIndex
	cfg   Config
	log   logger.Logger
	bus   eventbus.EventBus
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for activation and refresh traces.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEventBus publishes signup, activation and refresh events on bus.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Scheduler) { s.bus = bus }
}

// WithIndex reuses a previously built occurrence index for inst.
func WithIndex(idx model.OccurrenceIndex) Option {
	return func(s *Scheduler) {
		if idx != nil {
			s.index = idx
		}
	}
}

// New returns a Scheduler for inst. cfg defaults are applied.
func New(inst *model.Instance, cfg Config, opts ...Option) *Scheduler {
	cfg.SetDefaults()
	s := &Scheduler{inst: inst, cfg: cfg, log: logger.NopLogger{}}
	for _, o := range opts {
		o(s)
	}
	if s.index == nil {
		s.index = model.NewOccurrenceIndex(inst)
	}
	return s
}

// Index returns the shared occurrence index.
func (s *Scheduler) Index() model.OccurrenceIndex { return s.index }

// Solve runs the day-driven simulation with the configured weights.
func (s *Scheduler) Solve() Result {
	return s.SolveWith(s.cfg.Weights)
}

// SolveWith runs the simulation with w in place of the configured weights.
func (s *Scheduler) SolveWith(w ranking.Weights) Result {
	r := s.newRun(w.Normalized())
	for day := 0; day < s.inst.DayBudget; day++ {
		r.step(day)
	}
	if p := r.signup.Current(); p != nil {
		s.log.Debugf("signup of library %d started on day %d discarded at horizon", p.Library.ID, p.StartDay)
	}
	return Result{
		Solution:    *r.solution,
		Score:       r.dispatch.Score(),
		Activations: r.activations,
		Refreshes:   r.refreshes,
		Skipped:     r.dispatch.Skipped(),
	}
}

type run struct {
	s        *Scheduler
	ranker   *ranking.LibraryRanker
	states   []LibraryState
	dispatch *Dispatcher
	signup   Signup
	solution *model.Solution

	interval    int
	candidates  []ranking.LibraryScore
	lastRefresh int
	exhausted   bool
	refreshes   int

	active      []int
	activations []Activation
}

func (s *Scheduler) newRun(w ranking.Weights) *run {
	val := ranking.NewBookValuation(s.inst, s.index, w)
	states := newLibraryStates(s.inst, val.Of)
	sol := &model.Solution{Libraries: []model.LibraryScan{}}
	return &run{
		s:           s,
		ranker:      ranking.NewLibraryRanker(s.inst, w),
		states:      states,
		dispatch:    newDispatcher(s.inst, s.index, val, states, sol),
		solution:    sol,
		interval:    s.cfg.RefreshInterval(len(s.inst.Libraries)),
		lastRefresh: -1,
	}
}

func (r *run) step(day int) {
	if p, ok := r.signup.Complete(day); ok {
		r.activate(p, day)
	}
	if r.signup.Idle() && r.s.inst.DayBudget-day > 1 {
		r.startNext(day)
	}
	for _, id := range r.active {
		st := &r.states[id]
		if st.activatedDay < day {
			r.dispatch.ScanDay(st)
		}
	}
}

func (r *run) activate(p *SignupProcess, day int) {
	st := &r.states[p.Library.ID]
	if st.status != statusSigningUp {
		panic(fmt.Sprintf("library %d activated twice", p.Library.ID))
	}
	st.status = statusActive
	st.activatedDay = day
	st.position = r.solution.AddLibrary(p.Library.ID)
	r.dispatch.BuildQueue(st)
	r.active = append(r.active, p.Library.ID)
	r.activations = append(r.activations, Activation{LibraryID: p.Library.ID, SignupDay: p.StartDay, ActivatedDay: day})

	queued := st.pending()
	scanned := r.dispatch.ScanDay(st)
	r.s.log.Debugw("library activated", map[string]any{
		"library": p.Library.ID,
		"day":     day,
		"queue":   queued,
		"scanned": scanned,
	})
	if r.s.bus != nil {
		r.s.bus.Publish(events.ActivationEvent{LibraryID: p.Library.ID, Day: day, QueueLen: queued})
	}
}

// startNext pops candidates until one can finish signing up before the
// horizon. Candidates that cannot are discarded for good.
func (r *run) startNext(day int) {
	activated := len(r.active)
	if activated%r.interval == 0 && activated != r.lastRefresh {
		r.refresh(day)
	}
	for {
		if len(r.candidates) == 0 {
			if r.exhausted {
				return
			}
			r.refresh(day)
			if len(r.candidates) == 0 {
				return
			}
		}
		next := r.candidates[0]
		r.candidates = r.candidates[1:]
		st := &r.states[next.LibraryID]
		if st.status != statusCandidate || st.Unscanned() == 0 {
			continue
		}
		if day+st.Library.SignupDays >= r.s.inst.DayBudget {
			st.status = statusDiscarded
			continue
		}
		if err := r.signup.Begin(st.Library, day); err != nil {
			panic(err)
		}
		st.status = statusSigningUp
		if r.s.bus != nil {
			r.s.bus.Publish(events.SignupEvent{LibraryID: st.Library.ID, Day: day})
		}
		return
	}
}

func (r *run) refresh(day int) {
	cands := make([]ranking.Candidate, 0, len(r.states))
	for i := range r.states {
		st := &r.states[i]
		if st.status != statusCandidate {
			continue
		}
		cands = append(cands, ranking.Candidate{
			Library:        st.Library,
			Unscanned:      st.Unscanned(),
			RemainingValue: st.RemainingValue(),
		})
	}
	r.candidates = r.ranker.Rank(cands, day)
	r.lastRefresh = len(r.active)
	r.refreshes++
	if len(r.candidates) == 0 {
		r.exhausted = true
	}
	r.s.log.Debugf("ranked %d candidates on day %d after %d activations", len(r.candidates), day, len(r.active))
	if r.s.bus != nil {
		r.s.bus.Publish(events.RefreshEvent{Day: day, Activated: len(r.active), Candidates: len(r.candidates)})
	}
}
