package ranking

import (
	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/stats"
)

// BookValuation caches the composite desirability of every book, indexed
// by book id. It does not depend on scan progress and is never recomputed
// during a run.
type BookValuation []float64

// NewBookValuation blends the score percentile with the inverse holder
// percentile: rarer books are worth more. w must be normalized.
func NewBookValuation(in *model.Instance, idx model.OccurrenceIndex, w Weights) BookValuation {
	scores := make([]int, len(in.Books))
	holders := make([]int, len(in.Books))
	for i, b := range in.Books {
		scores[i] = b.Score
		holders[i] = idx.Count(b.ID)
	}
	scoreNorm := stats.NewIntNormalizer(scores)
	rarityNorm := stats.NewIntNormalizer(holders)

	val := make(BookValuation, len(in.Books))
	for i := range in.Books {
		val[i] = w.Score*scoreNorm.Percentile(float64(scores[i])) +
			w.Rarity*(1-rarityNorm.Percentile(float64(holders[i])))
	}
	return val
}

// Of returns the valuation of book id.
func (v BookValuation) Of(id int) float64 { return v[id] }

// Sum returns the total valuation of ids.
func (v BookValuation) Sum(ids []int) float64 {
	total := 0.0
	for _, id := range ids {
		total += v[id]
	}
	return total
}
