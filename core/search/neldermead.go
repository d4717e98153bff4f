package search

import (
	"context"

	"gonum.org/v1/gonum/optimize"

	"github.com/kilianp07/libscan/core/logger"
)

// NelderMead runs gonum's downhill simplex over the weight vector.
type NelderMead struct {
	MaxEvaluations int
	log            logger.Logger
}

// ctxConverger stops the optimizer once ctx is done.
type ctxConverger struct {
	ctx  context.Context
	next optimize.Converger
}

func (c ctxConverger) Init(dim int) { c.next.Init(dim) }

func (c ctxConverger) Converged(loc *optimize.Location) optimize.Status {
	if c.ctx.Err() != nil {
		return optimize.RuntimeLimit
	}
	return c.next.Converged(loc)
}

// Search implements Searcher.
func (n *NelderMead) Search(ctx context.Context, obj *Objective, x0 []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	problem := optimize.Problem{Func: obj.Eval}
	settings := &optimize.Settings{
		FuncEvaluations: n.MaxEvaluations,
		Converger: ctxConverger{ctx: ctx, next: &optimize.FunctionConverge{
			Absolute:   1e-9,
			Iterations: 50,
		}},
	}
	res, err := optimize.Minimize(problem, append([]float64(nil), x0...), settings, &optimize.NelderMead{})
	if res != nil && n.log != nil {
		n.log.Debugf("nelder-mead stopped: %v after %d evaluations", res.Status, res.Stats.FuncEvaluations)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && res != nil {
		switch res.Status {
		case optimize.FunctionEvaluationLimit, optimize.IterationLimit:
			return nil
		}
	}
	return err
}
