// Package dataset reads problem instances and solutions from the
// whitespace-delimited text format.
//
// Instance layout:
//
//	B L D
//	score_0 ... score_{B-1}
//	book_qty signup_days throughput   (once per library)
//	book_id ...                       (book_qty ids)
//
// Solution layout:
//
//	A
//	library_id book_count             (once per activated library)
//	book_id ...                       (book_count ids, scan order)
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/libscan/core/model"
)

// ErrMalformed reports input that does not follow the expected layout.
var ErrMalformed = errors.New("malformed input")

type tokens struct {
	sc   *bufio.Scanner
	read int
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

// next returns the next integer, naming what for error messages.
func (t *tokens) next(what string) (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformed, what)
	}
	t.read++
	v, err := strconv.Atoi(t.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: token %d (%s): %q is not an integer", ErrMalformed, t.read, what, t.sc.Text())
	}
	return v, nil
}

func (t *tokens) count(what string) (int, error) {
	v, err := t.next(what)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", ErrMalformed, what, v)
	}
	return v, nil
}

func (t *tokens) end() error {
	if t.sc.Scan() {
		return fmt.Errorf("%w: trailing data %q after token %d", ErrMalformed, t.sc.Text(), t.read)
	}
	return t.sc.Err()
}

// Load parses an instance and validates it.
func Load(r io.Reader) (*model.Instance, error) {
	t := newTokens(r)
	nBooks, err := t.count("book count")
	if err != nil {
		return nil, err
	}
	nLibs, err := t.count("library count")
	if err != nil {
		return nil, err
	}
	days, err := t.count("day budget")
	if err != nil {
		return nil, err
	}
	in := &model.Instance{
		DayBudget: days,
		Books:     make([]model.Book, nBooks),
		Libraries: make([]model.Library, nLibs),
	}
	for i := range in.Books {
		score, err := t.next("book score")
		if err != nil {
			return nil, err
		}
		in.Books[i] = model.Book{ID: i, Score: score}
	}
	for i := range in.Libraries {
		qty, err := t.count(fmt.Sprintf("library %d book count", i))
		if err != nil {
			return nil, err
		}
		signup, err := t.next(fmt.Sprintf("library %d signup days", i))
		if err != nil {
			return nil, err
		}
		tp, err := t.next(fmt.Sprintf("library %d throughput", i))
		if err != nil {
			return nil, err
		}
		lib := model.Library{ID: i, SignupDays: signup, Throughput: tp, Books: make([]int, qty)}
		for j := range lib.Books {
			if lib.Books[j], err = t.next(fmt.Sprintf("library %d book id", i)); err != nil {
				return nil, err
			}
		}
		in.Libraries[i] = lib
	}
	if err := t.end(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return in, nil
}

// LoadFile opens path and parses the instance it holds.
func LoadFile(path string) (*model.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	in, err := Load(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return in, nil
}

// LoadSolution parses a solution. It checks the layout only; use
// evaluator.Check to validate it against an instance.
func LoadSolution(r io.Reader) (model.Solution, error) {
	t := newTokens(r)
	n, err := t.count("library count")
	if err != nil {
		return model.Solution{}, err
	}
	sol := model.Solution{Libraries: make([]model.LibraryScan, 0, n)}
	for i := 0; i < n; i++ {
		id, err := t.next("library id")
		if err != nil {
			return model.Solution{}, err
		}
		k, err := t.count(fmt.Sprintf("library %d book count", id))
		if err != nil {
			return model.Solution{}, err
		}
		pos := sol.AddLibrary(id)
		for j := 0; j < k; j++ {
			b, err := t.next(fmt.Sprintf("library %d book id", id))
			if err != nil {
				return model.Solution{}, err
			}
			sol.AddBook(pos, b)
		}
	}
	if err := t.end(); err != nil {
		return model.Solution{}, err
	}
	return sol, nil
}

// LoadSolutionFile opens path and parses the solution it holds.
func LoadSolutionFile(path string) (model.Solution, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Solution{}, err
	}
	defer func() { _ = f.Close() }()
	sol, err := LoadSolution(bufio.NewReader(f))
	if err != nil {
		return model.Solution{}, fmt.Errorf("load %s: %w", path, err)
	}
	return sol, nil
}

// Name labels a dataset by the base name of its file without extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
