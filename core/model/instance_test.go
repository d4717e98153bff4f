package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInstance() *Instance {
	return &Instance{
		DayBudget: 7,
		Books:     []Book{{0, 1}, {1, 2}, {2, 3}, {3, 6}, {4, 5}, {5, 4}},
		Libraries: []Library{
			{ID: 0, Books: []int{0, 1, 2, 3, 4}, SignupDays: 1, Throughput: 2},
			{ID: 1, Books: []int{0, 2, 3}, SignupDays: 1, Throughput: 1},
		},
	}
}

func TestOccurrenceIndex(t *testing.T) {
	in := sampleInstance()
	idx := NewOccurrenceIndex(in)
	require.Len(t, idx, in.BookCount())
	assert.Equal(t, []int{0, 1}, idx.Holders(0))
	assert.Equal(t, []int{0}, idx.Holders(1))
	assert.Equal(t, 0, idx.Count(5))
	assert.Equal(t, 2, idx.Count(3))
}

func TestOccurrenceIndexRepeatedBook(t *testing.T) {
	in := &Instance{
		Books:     []Book{{0, 1}},
		Libraries: []Library{{ID: 0, Books: []int{0, 0}, SignupDays: 1, Throughput: 1}},
	}
	idx := NewOccurrenceIndex(in)
	assert.Equal(t, 1, idx.Count(0))
}

func TestValidate(t *testing.T) {
	in := sampleInstance()
	require.NoError(t, in.Validate())

	bad := sampleInstance()
	bad.Libraries[1].Books = append(bad.Libraries[1].Books, 9)
	assert.Error(t, bad.Validate())

	bad = sampleInstance()
	bad.Libraries[0].Throughput = 0
	assert.Error(t, bad.Validate())

	bad = sampleInstance()
	bad.Books[2].ID = 7
	assert.Error(t, bad.Validate())
}

func TestLibraryBookQty(t *testing.T) {
	in := sampleInstance()
	if in.Libraries[1].BookQty() != 3 {
		t.Fatalf("bad book qty")
	}
}

func TestSolutionDuplicates(t *testing.T) {
	var s Solution
	p := s.AddLibrary(0)
	s.AddBook(p, 3)
	s.AddBook(p, 4)
	q := s.AddLibrary(1)
	s.AddBook(q, 3)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, s.BookCount())
	assert.Equal(t, []int{3}, s.Duplicates())
}
