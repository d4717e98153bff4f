package search

import (
	"github.com/kilianp07/libscan/core/evaluator"
	"github.com/kilianp07/libscan/core/events"
	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/ranking"
	"github.com/kilianp07/libscan/core/scheduler"
	"github.com/kilianp07/libscan/internal/eventbus"
)

// Trial is one evaluated weight vector.
type Trial struct {
	Weights  ranking.Weights
	Score    int
	Solution model.Solution
}

// Objective maps weight vectors to negated scores and remembers the best
// trial seen.
type Objective struct {
	inst   *model.Instance
	sched  *scheduler.Scheduler
	bus    eventbus.EventBus
	method string

	trials int
	best   Trial
	seen   bool
}

// NewObjective wraps sched. bus may be nil.
func NewObjective(inst *model.Instance, sched *scheduler.Scheduler, bus eventbus.EventBus) *Objective {
	return &Objective{inst: inst, sched: sched, bus: bus}
}

// Clip projects x onto [0,1] in place and returns it.
func Clip(x []float64) []float64 {
	for i, v := range x {
		switch {
		case v < 0 || v != v:
			x[i] = 0
		case v > 1:
			x[i] = 1
		}
	}
	return x
}

// Eval scores x and returns the negated evaluator score.
func (o *Objective) Eval(x []float64) float64 {
	p := Clip(append([]float64(nil), x...))
	w, err := ranking.WeightsFromVector(p)
	if err != nil {
		panic(err)
	}
	res := o.sched.SolveWith(w)
	score := evaluator.Evaluate(o.inst, res.Solution)
	o.trials++
	if !o.seen || score > o.best.Score {
		o.best = Trial{Weights: w, Score: score, Solution: res.Solution}
		o.seen = true
	}
	if o.bus != nil {
		o.bus.Publish(events.TrialEvent{Method: o.method, Trial: o.trials, Score: score, Best: o.best.Score})
	}
	return -float64(score)
}

// Trials returns how many vectors were evaluated.
func (o *Objective) Trials() int { return o.trials }

// Best returns the best trial so far.
func (o *Objective) Best() (Trial, bool) { return o.best, o.seen }
