// Package export writes solutions and per-library reports.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kilianp07/libscan/core/model"
	"github.com/kilianp07/libscan/core/scheduler"
)

// WriteSolution writes sol in the submission text format. Libraries that
// scanned no book are omitted.
func WriteSolution(w io.Writer, sol model.Solution) error {
	bw := bufio.NewWriter(w)
	kept := 0
	for _, l := range sol.Libraries {
		if len(l.Books) > 0 {
			kept++
		}
	}
	fmt.Fprintln(bw, kept)
	for _, l := range sol.Libraries {
		if len(l.Books) == 0 {
			continue
		}
		fmt.Fprintln(bw, l.LibraryID, len(l.Books))
		for i, b := range l.Books {
			if i > 0 {
				_ = bw.WriteByte(' ')
			}
			_, _ = bw.WriteString(strconv.Itoa(b))
		}
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteSolutionFile writes sol to path, creating parent directories.
func WriteSolutionFile(path string, sol model.Solution) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSolution(f, sol); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Entry summarises one activated library.
type Entry struct {
	LibraryID    int `json:"library_id"`
	SignupDay    int `json:"signup_day"`
	ActivatedDay int `json:"activated_day"`
	Books        int `json:"books"`
	Score        int `json:"score"`
}

// NewReport builds one Entry per activated library, in activation order.
func NewReport(in *model.Instance, res scheduler.Result) []Entry {
	scans := make(map[int][]int, len(res.Solution.Libraries))
	for _, l := range res.Solution.Libraries {
		scans[l.LibraryID] = l.Books
	}
	entries := make([]Entry, 0, len(res.Activations))
	for _, a := range res.Activations {
		books := scans[a.LibraryID]
		score := 0
		for _, b := range books {
			score += in.Books[b].Score
		}
		entries = append(entries, Entry{
			LibraryID:    a.LibraryID,
			SignupDay:    a.SignupDay,
			ActivatedDay: a.ActivatedDay,
			Books:        len(books),
			Score:        score,
		})
	}
	return entries
}

// WriteJSON writes the report to w in JSON format.
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteCSV writes the report to w in CSV format with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"library_id", "signup_day", "activated_day", "books", "score"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			strconv.Itoa(e.LibraryID),
			strconv.Itoa(e.SignupDay),
			strconv.Itoa(e.ActivatedDay),
			strconv.Itoa(e.Books),
			strconv.Itoa(e.Score),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
