// Package runs exposes the run history over HTTP.
package runs

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/libscan/core/runlog"
)

// Path is the route NewHandler is meant to be mounted on.
const Path = "/api/runs"

// NewHandler returns an HTTP handler answering GET /api/runs with the
// matching run records as JSON. Requests must carry "Bearer <token>" in the
// Authorization header when token is non-empty.
//
// Query parameters: dataset, command, start and end (RFC3339), limit.
func NewHandler(store runlog.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && !authorized(r.Header.Get("Authorization"), token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []runlog.RunRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func authorized(header, token string) bool {
	return subtle.ConstantTimeCompare([]byte(header), []byte("Bearer "+token)) == 1
}

func parseQuery(r *http.Request) (runlog.Query, error) {
	v := r.URL.Query()
	q := runlog.Query{
		Dataset: v.Get("dataset"),
		Command: v.Get("command"),
	}
	if s := v.Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, badParam("start", err)
		}
		q.Start = t
	}
	if s := v.Get("end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, badParam("end", err)
		}
		q.End = t
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return q, badParam("limit", err)
		}
		q.Limit = n
	}
	return q, nil
}

type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	if e.err == nil {
		return "invalid " + e.name
	}
	return "invalid " + e.name + ": " + e.err.Error()
}

func (e *paramError) Unwrap() error { return e.err }

func badParam(name string, err error) error { return &paramError{name: name, err: err} }
