package scheduler

import (
	"fmt"
	"sort"

	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/ranking"
)

// Dispatcher owns the global scanned set and the per-library dispatch
// queues. Queues are sorted once, when their library activates; books
// claimed by another library afterwards are skipped on pop without using
// the daily quota.
type Dispatcher struct {
	books     []model.Book
	index     model.OccurrenceIndex
	valuation ranking.BookValuation
	states    []LibraryState
	scanned   []bool
	solution  *model.Solution
	score     int
	skipped   int
}

func newDispatcher(in *model.Instance, idx model.OccurrenceIndex, val ranking.BookValuation, states []LibraryState, sol *model.Solution) *Dispatcher {
	return &Dispatcher{
		books:     in.Books,
		index:     idx,
		valuation: val,
		states:    states,
		scanned:   make([]bool, len(in.Books)),
		solution:  sol,
	}
}

// BuildQueue sorts the library's unscanned books by descending valuation,
// ties broken by ascending book id.
func (d *Dispatcher) BuildQueue(st *LibraryState) {
	if st.queue != nil {
		panic(fmt.Sprintf("dispatch queue of library %d built twice", st.Library.ID))
	}
	q := make([]int, 0, len(st.unscanned))
	for b := range st.unscanned {
		q = append(q, b)
	}
	val := d.valuation
	sort.Slice(q, func(i, j int) bool {
		vi, vj := val.Of(q[i]), val.Of(q[j])
		if vi != vj {
			return vi > vj
		}
		return q[i] < q[j]
	})
	st.queue = q
	st.head = 0
}

// ScanDay performs up to throughput scans for the library and returns the
// number of books accepted.
func (d *Dispatcher) ScanDay(st *LibraryState) int {
	quota := st.Library.Throughput
	accepted := 0
	for accepted < quota && st.head < len(st.queue) {
		b := st.queue[st.head]
		st.head++
		if d.scanned[b] {
			d.skipped++
			continue
		}
		d.accept(st, b)
		accepted++
	}
	return accepted
}

func (d *Dispatcher) accept(st *LibraryState, b int) {
	if d.scanned[b] {
		panic(fmt.Sprintf("book %d dispatched twice", b))
	}
	d.scanned[b] = true
	d.score += d.books[b].Score
	v := d.valuation.Of(b)
	for _, h := range d.index.Holders(b) {
		d.states[h].consume(b, v)
	}
	d.solution.AddBook(st.position, b)
}

// Scanned reports whether book id has been accepted by any library.
func (d *Dispatcher) Scanned(id int) bool { return d.scanned[id] }

// Score returns the summed score of every accepted book.
func (d *Dispatcher) Score() int { return d.score }

// Skipped returns how many stale queue entries were discarded on pop.
func (d *Dispatcher) Skipped() int { return d.skipped }
