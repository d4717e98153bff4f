package ranking

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/libscan/core/model"
)

func exampleInstance() *model.Instance {
	return &model.Instance{
		DayBudget: 7,
		Books:     []model.Book{{ID: 0, Score: 1}, {ID: 1, Score: 2}, {ID: 2, Score: 3}, {ID: 3, Score: 6}, {ID: 4, Score: 5}, {ID: 5, Score: 4}},
		Libraries: []model.Library{
			{ID: 0, Books: []int{0, 1, 2, 3, 4}, SignupDays: 1, Throughput: 2},
			{ID: 1, Books: []int{0, 2, 3}, SignupDays: 1, Throughput: 1},
		},
	}
}

func candidates(in *model.Instance, val BookValuation) []Candidate {
	out := make([]Candidate, len(in.Libraries))
	for i := range in.Libraries {
		l := &in.Libraries[i]
		out[i] = Candidate{Library: l, Unscanned: l.BookQty(), RemainingValue: val.Sum(l.Books)}
	}
	return out
}

func TestBookValuationOrder(t *testing.T) {
	in := exampleInstance()
	val := NewBookValuation(in, model.NewOccurrenceIndex(in), DefaultWeights())

	ids := []int{0, 1, 2, 3, 4}
	sort.Slice(ids, func(i, j int) bool { return val.Of(ids[i]) > val.Of(ids[j]) })
	assert.Equal(t, []int{3, 4, 2, 1, 0}, ids)
	for _, v := range val {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestBookValuationRarity(t *testing.T) {
	in := exampleInstance()
	w := Weights{Rarity: 1}.Normalized()
	val := NewBookValuation(in, model.NewOccurrenceIndex(in), w)
	// book 5 is held by nobody, book 1 by one library, book 0 by two
	assert.Greater(t, val.Of(5), val.Of(1))
	assert.Greater(t, val.Of(1), val.Of(0))
}

func TestMaxBooks(t *testing.T) {
	assert.Equal(t, 5, MaxBooks(5, 2, 6))
	assert.Equal(t, 2, MaxBooks(5, 2, 1))
	assert.Equal(t, 0, MaxBooks(5, 2, 0))
	assert.Equal(t, 0, MaxBooks(0, 2, 6))
	assert.Equal(t, 3, MaxBooks(3, 10, 1))
}

func TestRankPrefersHigherRemainingValue(t *testing.T) {
	in := &model.Instance{
		DayBudget: 10,
		Books:     []model.Book{{ID: 0, Score: 1}, {ID: 1, Score: 2}, {ID: 2, Score: 5}, {ID: 3, Score: 6}},
		Libraries: []model.Library{
			{ID: 0, Books: []int{0, 1}, SignupDays: 2, Throughput: 1},
			{ID: 1, Books: []int{2, 3}, SignupDays: 2, Throughput: 1},
		},
	}
	w := DefaultWeights()
	val := NewBookValuation(in, model.NewOccurrenceIndex(in), w)
	r := NewLibraryRanker(in, w)

	ranked := r.Rank(candidates(in, val), 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].LibraryID)
	assert.Greater(t, ranked[0].Rank, ranked[1].Rank)
	assert.Greater(t, ranked[0].RoughEvaluation, ranked[1].RoughEvaluation)
}

func TestRankExcludesExhaustedLibraries(t *testing.T) {
	in := exampleInstance()
	w := DefaultWeights()
	val := NewBookValuation(in, model.NewOccurrenceIndex(in), w)
	r := NewLibraryRanker(in, w)
	cands := candidates(in, val)
	cands[1].Unscanned = 0
	cands[1].RemainingValue = 0

	ranked := r.Rank(cands, 0)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0, ranked[0].LibraryID)
}

func TestRankExampleLibraryZeroFirst(t *testing.T) {
	in := exampleInstance()
	w := DefaultWeights()
	val := NewBookValuation(in, model.NewOccurrenceIndex(in), w)
	r := NewLibraryRanker(in, w)

	ranked := r.Rank(candidates(in, val), 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, 0, ranked[0].LibraryID)
	assert.Equal(t, 5, ranked[0].MaxBooks)
	assert.Equal(t, 3, ranked[1].MaxBooks)
}

func TestRankTiesByID(t *testing.T) {
	in := &model.Instance{
		DayBudget: 5,
		Books:     []model.Book{{ID: 0, Score: 3}, {ID: 1, Score: 3}},
		Libraries: []model.Library{
			{ID: 0, Books: []int{1}, SignupDays: 1, Throughput: 1},
			{ID: 1, Books: []int{0}, SignupDays: 1, Throughput: 1},
		},
	}
	w := DefaultWeights()
	val := NewBookValuation(in, model.NewOccurrenceIndex(in), w)
	ranked := NewLibraryRanker(in, w).Rank(candidates(in, val), 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, 0, ranked[0].LibraryID)
	assert.Equal(t, ranked[0].Rank, ranked[1].Rank)
}
