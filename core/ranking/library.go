package ranking

import (
	"sort"

	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/stats"
)

// Candidate is the scan progress of a library not yet signed up.
type Candidate struct {
	Library        *model.Library
	Unscanned      int
	RemainingValue float64
}

// LibraryScore is the ranking outcome for one candidate.
type LibraryScore struct {
	LibraryID       int
	MaxBooks        int
	RoughEvaluation float64
	Rank            float64
}

// LibraryRanker scores candidates against population statistics fitted
// once over every library of the instance.
type LibraryRanker struct {
	weights   Weights
	dayBudget int
	bookQty   stats.Normalizer
	signup    stats.Normalizer
}

// NewLibraryRanker fits the book-count and signup-days normalizers. w must
// be normalized.
func NewLibraryRanker(in *model.Instance, w Weights) *LibraryRanker {
	qty := make([]int, len(in.Libraries))
	signup := make([]int, len(in.Libraries))
	for i, l := range in.Libraries {
		qty[i] = l.BookQty()
		signup[i] = l.SignupDays
	}
	return &LibraryRanker{
		weights:   w,
		dayBudget: in.DayBudget,
		bookQty:   stats.NewIntNormalizer(qty),
		signup:    stats.NewIntNormalizer(signup),
	}
}

// ScanDays returns how many days a library could scan if its signup began
// on day.
func (r *LibraryRanker) ScanDays(l *model.Library, day int) int {
	d := r.dayBudget - day - l.SignupDays
	if d < 0 {
		return 0
	}
	return d
}

// MaxBooks returns how many of the unscanned books the library can reach
// within scanDays.
func MaxBooks(unscanned, throughput, scanDays int) int {
	if unscanned <= 0 || scanDays <= 0 {
		return 0
	}
	needed := activeDaysNeeded(unscanned, throughput)
	n := throughput * min(needed, scanDays)
	return min(n, unscanned)
}

func activeDaysNeeded(unscanned, throughput int) int {
	return (unscanned + throughput - 1) / throughput
}

// Score computes the composite rank of c for a signup starting on day. The
// second result is false when the candidate has nothing left to scan.
func (r *LibraryRanker) Score(c Candidate, day int) (LibraryScore, bool) {
	if c.Unscanned <= 0 {
		return LibraryScore{}, false
	}
	l := c.Library
	scanDays := r.ScanDays(l, day)
	maxBooks := MaxBooks(c.Unscanned, l.Throughput, scanDays)
	rough := c.RemainingValue * float64(maxBooks) / float64(c.Unscanned)

	avgValue := 0.0
	if maxBooks > 0 {
		avgValue = rough / float64(maxBooks)
	}
	horizon := 0.0
	if scanDays > 0 {
		horizon = float64(min(activeDaysNeeded(c.Unscanned, l.Throughput), scanDays)) / float64(scanDays)
	}

	w := r.weights
	rank := w.Value*avgValue +
		w.Books*r.bookQty.Percentile(float64(maxBooks)) +
		w.Horizon*horizon +
		w.Signup*(1-r.signup.Percentile(float64(l.SignupDays)))

	return LibraryScore{
		LibraryID:       l.ID,
		MaxBooks:        maxBooks,
		RoughEvaluation: rough,
		Rank:            rank,
	}, true
}

// Rank scores every candidate with unscanned books and returns them by
// descending rank, ties broken by ascending library id.
func (r *LibraryRanker) Rank(cands []Candidate, day int) []LibraryScore {
	out := make([]LibraryScore, 0, len(cands))
	for _, c := range cands {
		if s, ok := r.Score(c, day); ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].LibraryID < out[j].LibraryID
	})
	return out
}
