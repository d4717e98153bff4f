package evaluator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/libscan/core/model"
)

func instance() *model.Instance {
	return &model.Instance{
		DayBudget: 7,
		Books:     []model.Book{{ID: 0, Score: 1}, {ID: 1, Score: 2}, {ID: 2, Score: 3}, {ID: 3, Score: 6}, {ID: 4, Score: 5}, {ID: 5, Score: 4}},
		Libraries: []model.Library{
			{ID: 0, Books: []int{0, 1, 2, 3, 4}, SignupDays: 2, Throughput: 2},
			{ID: 1, Books: []int{3, 2, 5, 0}, SignupDays: 3, Throughput: 1},
		},
	}
}

func TestEvaluateHashCodeExample(t *testing.T) {
	sol := model.Solution{Libraries: []model.LibraryScan{
		{LibraryID: 1, Books: []int{5, 2, 3}},
		{LibraryID: 0, Books: []int{0, 1, 2, 3, 4}},
	}}
	// library 1 scans days 3..6 (cap 4); library 0 scans days 5..6 (cap 4)
	assert.Equal(t, 4+3+6+1+2, Evaluate(instance(), sol))
}

func TestEvaluateCountsBooksOnce(t *testing.T) {
	sol := model.Solution{Libraries: []model.LibraryScan{
		{LibraryID: 0, Books: []int{3}},
		{LibraryID: 1, Books: []int{3, 5}},
	}}
	assert.Equal(t, 6+4, Evaluate(instance(), sol))
}

func TestEvaluateStopsWhenOutOfDays(t *testing.T) {
	in := instance()
	in.DayBudget = 2
	sol := model.Solution{Libraries: []model.LibraryScan{{LibraryID: 0, Books: []int{3, 4}}}}
	assert.Zero(t, Evaluate(in, sol))
}

func TestEvaluateEmpty(t *testing.T) {
	assert.Zero(t, Evaluate(instance(), model.Solution{}))
	assert.Zero(t, Evaluate(&model.Instance{}, model.Solution{}))
}

func TestCheck(t *testing.T) {
	in := instance()
	ok := model.Solution{Libraries: []model.LibraryScan{{LibraryID: 0, Books: []int{3, 4}}, {LibraryID: 1, Books: []int{5}}}}
	assert.NoError(t, Check(in, ok))

	cases := map[string]model.Solution{
		"unknown library": {Libraries: []model.LibraryScan{{LibraryID: 4}}},
		"library twice":   {Libraries: []model.LibraryScan{{LibraryID: 0}, {LibraryID: 0}}},
		"book not held":   {Libraries: []model.LibraryScan{{LibraryID: 0, Books: []int{5}}}},
		"book twice":      {Libraries: []model.LibraryScan{{LibraryID: 0, Books: []int{3}}, {LibraryID: 1, Books: []int{3}}}},
	}
	for name, sol := range cases {
		t.Run(name, func(t *testing.T) {
			err := Check(in, sol)
			assert.True(t, errors.Is(err, ErrInvalidSolution), "got %v", err)
		})
	}
}
