package scenarios

import (
	"fmt"

	"github.com/kilianp07/libscan/core/evaluator"
	"github.com/kilianp07/libscan/core/events"
	"github.com/kilianp07/libscan/core/scheduler"
	"github.com/kilianp07/libscan/internal/eventbus"
)

// Report summarises one scenario run.
type Report struct {
	Score       int
	Evaluated   int
	Activations int
	// ActivationEvents counts the activations observed on the event bus.
	ActivationEvents int
	Dropped          uint64
}

// Run schedules the scenario and verifies the solution against the
// evaluator and the expected outcome.
func Run(sc *Scenario) (Report, error) {
	in, err := sc.Instance()
	if err != nil {
		return Report{}, err
	}
	bus := eventbus.New()
	sub := bus.Subscribe()
	res := scheduler.New(in, sc.Scheduler, scheduler.WithEventBus(bus)).Solve()
	bus.Close()

	rep := Report{
		Score:       res.Score,
		Evaluated:   evaluator.Evaluate(in, res.Solution),
		Activations: len(res.Activations),
	}
	for e := range sub {
		if _, ok := e.(events.ActivationEvent); ok {
			rep.ActivationEvents++
		}
	}
	rep.Dropped = bus.Dropped()

	if err := evaluator.Check(in, res.Solution); err != nil {
		return rep, err
	}
	if rep.Evaluated != rep.Score {
		return rep, fmt.Errorf("%s: scheduler scored %d, evaluator %d", sc.Name, rep.Score, rep.Evaluated)
	}
	exp := sc.Expected
	if exp.MinScore > 0 && rep.Score < exp.MinScore {
		return rep, fmt.Errorf("%s: score %d below minimum %d", sc.Name, rep.Score, exp.MinScore)
	}
	if exp.MinScore == 0 && rep.Score != exp.Score {
		return rep, fmt.Errorf("%s: score %d, expected %d", sc.Name, rep.Score, exp.Score)
	}
	if exp.Activations != nil && rep.Activations != *exp.Activations {
		return rep, fmt.Errorf("%s: %d activations, expected %d", sc.Name, rep.Activations, *exp.Activations)
	}
	return rep, nil
}
