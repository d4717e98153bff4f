// Package runlog keeps the history of finished solve and tune runs.
package runlog

import (
	"context"
	"sort"
	"time"

	"github.com/kilianp07/libscan/core/ranking"
)

// RunRecord captures the final outcome of one run.
type RunRecord struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Dataset    string          `json:"dataset"`
	Command    string          `json:"command"`
	Method     string          `json:"method"`
	Score      int             `json:"score"`
	Libraries  int             `json:"libraries"`
	Books      int             `json:"books"`
	Trials     int             `json:"trials"`
	DurationMS int64           `json:"duration_ms"`
	Weights    ranking.Weights `json:"weights"`
	Output     string          `json:"output,omitempty"`
}

// Query defines filters for retrieving records. Zero fields match all.
type Query struct {
	Start   time.Time
	End     time.Time
	Dataset string
	Command string
	Limit   int
}

func (q Query) match(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Dataset != "" && r.Dataset != q.Dataset {
		return false
	}
	if q.Command != "" && r.Command != q.Command {
		return false
	}
	return true
}

// Store persists RunRecords and supports querying. Query results are
// ordered by timestamp.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q Query) ([]RunRecord, error)
	Close() error
}

// Best returns the highest scoring record for dataset. ok is false when
// the dataset has no history.
func Best(ctx context.Context, s Store, dataset string) (best RunRecord, ok bool, err error) {
	recs, err := s.Query(ctx, Query{Dataset: dataset})
	if err != nil {
		return RunRecord{}, false, err
	}
	for _, r := range recs {
		if !ok || r.Score > best.Score {
			best, ok = r, true
		}
	}
	return best, ok, nil
}

func sortAndLimit(recs []RunRecord, limit int) []RunRecord {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Timestamp.Before(recs[j].Timestamp) })
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	return recs
}
