package model

import "fmt"

// Book is a scannable item with a fixed score.
type Book struct {
	ID    int
	Score int
}

// Library holds a subset of books and pays SignupDays before it can scan
// up to Throughput books per day.
type Library struct {
	ID         int
	Books      []int // book ids in file order
	SignupDays int
	Throughput int
}

// BookQty returns the number of books the library holds.
func (l Library) BookQty() int { return len(l.Books) }

// Instance is the read-only description of one scheduling problem.
// Book and library ids are dense: Books[i].ID == i and Libraries[i].ID == i.
type Instance struct {
	DayBudget int
	Books     []Book
	Libraries []Library
}

// BookCount returns B.
func (in *Instance) BookCount() int { return len(in.Books) }

// LibraryCount returns L.
func (in *Instance) LibraryCount() int { return len(in.Libraries) }

// Validate checks that ids are dense and in range and that the per-library
// parameters are positive.
func (in *Instance) Validate() error {
	if in.DayBudget < 0 {
		return fmt.Errorf("negative day budget %d", in.DayBudget)
	}
	for i, b := range in.Books {
		if b.ID != i {
			return fmt.Errorf("book %d has id %d", i, b.ID)
		}
		if b.Score < 0 {
			return fmt.Errorf("book %d has negative score %d", i, b.Score)
		}
	}
	for i, l := range in.Libraries {
		if l.ID != i {
			return fmt.Errorf("library %d has id %d", i, l.ID)
		}
		if l.SignupDays <= 0 {
			return fmt.Errorf("library %d: signup days must be positive, got %d", i, l.SignupDays)
		}
		if l.Throughput <= 0 {
			return fmt.Errorf("library %d: throughput must be positive, got %d", i, l.Throughput)
		}
		for _, id := range l.Books {
			if id < 0 || id >= len(in.Books) {
				return fmt.Errorf("library %d references unknown book %d", i, id)
			}
		}
	}
	return nil
}

// OccurrenceIndex maps a book id to the ids of the libraries holding it.
// It is built once per instance and never mutated afterwards.
type OccurrenceIndex [][]int

// NewOccurrenceIndex builds the index for in. A library listing the same
// book twice is recorded once.
func NewOccurrenceIndex(in *Instance) OccurrenceIndex {
	idx := make(OccurrenceIndex, len(in.Books))
	for _, l := range in.Libraries {
		for _, b := range l.Books {
			holders := idx[b]
			if n := len(holders); n > 0 && holders[n-1] == l.ID {
				continue
			}
			idx[b] = append(holders, l.ID)
		}
	}
	return idx
}

// Holders returns the libraries holding book id.
func (idx OccurrenceIndex) Holders(id int) []int { return idx[id] }

// Count returns how many libraries hold book id.
func (idx OccurrenceIndex) Count(id int) int { return len(idx[id]) }
