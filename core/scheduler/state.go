package scheduler

import "github.com/kilianp07/libscan/core/model"

type libraryStatus int

const (
	statusCandidate libraryStatus = iota
	statusSigningUp
	statusActive
	statusDiscarded
)

// LibraryState is the scheduler-owned scan progress of one library. States
// live in an arena indexed by library id.
type LibraryState struct {
	Library *model.Library

	unscanned      map[int]struct{}
	remainingValue float64

	status       libraryStatus
	activatedDay int
	position     int // index in the solution once activated

	queue []int
	head  int
}

func newLibraryStates(in *model.Instance, value func(int) float64) []LibraryState {
	states := make([]LibraryState, len(in.Libraries))
	for i := range in.Libraries {
		l := &in.Libraries[i]
		st := LibraryState{
			Library:   l,
			unscanned: make(map[int]struct{}, len(l.Books)),
		}
		for _, b := range l.Books {
			if _, dup := st.unscanned[b]; dup {
				continue
			}
			st.unscanned[b] = struct{}{}
			st.remainingValue += value(b)
		}
		states[i] = st
	}
	return states
}

// Unscanned returns how many of the library's books nobody has scanned.
func (s *LibraryState) Unscanned() int { return len(s.unscanned) }

// RemainingValue returns the summed valuation of the unscanned books.
func (s *LibraryState) RemainingValue() float64 { return s.remainingValue }

// consume drops book id from the unscanned set.
func (s *LibraryState) consume(id int, value float64) {
	if _, ok := s.unscanned[id]; !ok {
		return
	}
	delete(s.unscanned, id)
	if len(s.unscanned) == 0 {
		s.remainingValue = 0
		return
	}
	s.remainingValue -= value
}

// pending returns how many queue entries remain to be popped, stale ones
// included.
func (s *LibraryState) pending() int { return len(s.queue) - s.head }
