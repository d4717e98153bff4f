// Package evaluator re-scores a solution independently of the scheduler
// that built it. It is the objective consumed by the weight search.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/kilianp07/libscan/core/model"
)

// Evaluate replays the solution: signups consume days sequentially in
// solution order, each library scans at most remaining_days*throughput of
// its listed books, and a book counts only the first time it is listed.
// The replay stops at the first library left with no scanning day.
func Evaluate(in *model.Instance, sol model.Solution) int {
	remaining := in.DayBudget
	seen := make([]bool, len(in.Books))
	score := 0
	for _, ls := range sol.Libraries {
		if ls.LibraryID < 0 || ls.LibraryID >= len(in.Libraries) {
			continue
		}
		lib := in.Libraries[ls.LibraryID]
		remaining -= lib.SignupDays
		if remaining <= 0 {
			break
		}
		limit := remaining * lib.Throughput
		for i, b := range ls.Books {
			if i >= limit {
				break
			}
			if b < 0 || b >= len(seen) || seen[b] {
				continue
			}
			seen[b] = true
			score += in.Books[b].Score
		}
	}
	return score
}

// ErrInvalidSolution wraps every structural problem reported by Check.
var ErrInvalidSolution = errors.New("invalid solution")

// Check verifies that a solution only references known libraries once,
// that each listed book is held by its library and that no book is listed
// twice.
func Check(in *model.Instance, sol model.Solution) error {
	libSeen := make(map[int]bool, len(sol.Libraries))
	bookSeen := make(map[int]int)
	for _, ls := range sol.Libraries {
		if ls.LibraryID < 0 || ls.LibraryID >= len(in.Libraries) {
			return fmt.Errorf("%w: unknown library %d", ErrInvalidSolution, ls.LibraryID)
		}
		if libSeen[ls.LibraryID] {
			return fmt.Errorf("%w: library %d listed twice", ErrInvalidSolution, ls.LibraryID)
		}
		libSeen[ls.LibraryID] = true
		held := make(map[int]bool, len(in.Libraries[ls.LibraryID].Books))
		for _, b := range in.Libraries[ls.LibraryID].Books {
			held[b] = true
		}
		for _, b := range ls.Books {
			if !held[b] {
				return fmt.Errorf("%w: library %d does not hold book %d", ErrInvalidSolution, ls.LibraryID, b)
			}
			if prev, dup := bookSeen[b]; dup {
				return fmt.Errorf("%w: book %d listed by libraries %d and %d", ErrInvalidSolution, b, prev, ls.LibraryID)
			}
			bookSeen[b] = ls.LibraryID
		}
	}
	return nil
}
