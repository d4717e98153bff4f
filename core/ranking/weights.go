package ranking

import "fmt"

// Dim is the length of the vector form of Weights.
const Dim = 6

// Weights holds the blending coefficients of the book and library features.
// Score and Rarity form the book group; Value, Books, Horizon and Signup
// form the library group.
type Weights struct {
	Score  float64 `json:"score" yaml:"score"`
	Rarity float64 `json:"rarity" yaml:"rarity"`

	Value   float64 `json:"value" yaml:"value"`
	Books   float64 `json:"books" yaml:"books"`
	Horizon float64 `json:"horizon" yaml:"horizon"`
	Signup  float64 `json:"signup" yaml:"signup"`
}

// DefaultWeights returns the coefficients used when no search has run.
func DefaultWeights() Weights {
	return Weights{
		Score:   0.85,
		Rarity:  0.15,
		Value:   0.45,
		Books:   0.2,
		Horizon: 0.1,
		Signup:  0.25,
	}
}

// IsZero reports whether every coefficient is zero.
func (w Weights) IsZero() bool { return w == Weights{} }

// Normalized clamps negative coefficients to zero and scales each group to
// sum to one. A group summing to zero is left at zero.
func (w Weights) Normalized() Weights {
	book := normalizeGroup(w.Score, w.Rarity)
	lib := normalizeGroup(w.Value, w.Books, w.Horizon, w.Signup)
	return Weights{
		Score: book[0], Rarity: book[1],
		Value: lib[0], Books: lib[1], Horizon: lib[2], Signup: lib[3],
	}
}

func normalizeGroup(vals ...float64) []float64 {
	sum := 0.0
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
		sum += vals[i]
	}
	if sum == 0 {
		sum = 1
	}
	for i := range vals {
		vals[i] /= sum
	}
	return vals
}

// Vector returns the coefficients in a fixed order, suitable for an outer
// numeric optimizer.
func (w Weights) Vector() []float64 {
	return []float64{w.Score, w.Rarity, w.Value, w.Books, w.Horizon, w.Signup}
}

// WeightsFromVector is the inverse of Vector.
func WeightsFromVector(v []float64) (Weights, error) {
	if len(v) != Dim {
		return Weights{}, fmt.Errorf("weight vector has %d entries, want %d", len(v), Dim)
	}
	return Weights{
		Score: v[0], Rarity: v[1],
		Value: v[2], Books: v[3], Horizon: v[4], Signup: v[5],
	}, nil
}

func (w Weights) String() string {
	return fmt.Sprintf("book[score=%.3f rarity=%.3f] library[value=%.3f books=%.3f horizon=%.3f signup=%.3f]",
		w.Score, w.Rarity, w.Value, w.Books, w.Horizon, w.Signup)
}
