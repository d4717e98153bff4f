package search

import (
	"context"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/libscan/core/logger"
)

// Evolution is a DE/rand/1/bin differential evolution over [0,1]^n. The
// initial population holds x0 and Gaussian deviations of it.
type Evolution struct {
	MaxEvaluations int
	Population     int
	Mutation       float64
	Recombination  float64
	InitialStdDev  float64
	Seed           uint64
	log            logger.Logger
}

// Search implements Searcher.
func (e *Evolution) Search(ctx context.Context, obj *Objective, x0 []float64) error {
	src := rand.NewPCG(e.Seed, e.Seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)
	dev := distuv.Normal{Mu: 0, Sigma: e.InitialStdDev, Src: src}
	dim := len(x0)

	pop := make([][]float64, e.Population)
	fit := make([]float64, e.Population)
	for i := range pop {
		if err := ctx.Err(); err != nil {
			return err
		}
		x := append([]float64(nil), x0...)
		if i > 0 {
			for j := range x {
				x[j] += dev.Rand()
			}
		}
		pop[i] = Clip(x)
		fit[i] = obj.Eval(pop[i])
		if obj.Trials() >= e.MaxEvaluations {
			return nil
		}
	}

	for gen := 1; ; gen++ {
		for i := range pop {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, b, c := e.pick3(rng, i)
			jrand := rng.IntN(dim)
			trial := make([]float64, dim)
			for j := 0; j < dim; j++ {
				if j == jrand || rng.Float64() < e.Recombination {
					trial[j] = pop[a][j] + e.Mutation*(pop[b][j]-pop[c][j])
				} else {
					trial[j] = pop[i][j]
				}
			}
			Clip(trial)
			if f := obj.Eval(trial); f <= fit[i] {
				pop[i], fit[i] = trial, f
			}
			if obj.Trials() >= e.MaxEvaluations {
				return nil
			}
		}
		if best, ok := obj.Best(); ok && e.log != nil {
			e.log.Debugf("generation %d best score %d", gen, best.Score)
		}
	}
}

// pick3 draws three distinct population indices different from i.
func (e *Evolution) pick3(rng *rand.Rand, i int) (int, int, int) {
	idx := make([]int, 0, e.Population-1)
	for k := 0; k < e.Population; k++ {
		if k != i {
			idx = append(idx, k)
		}
	}
	rng.Shuffle(len(idx), func(x, y int) { idx[x], idx[y] = idx[y], idx[x] })
	return idx[0], idx[1], idx[2]
}
