// Package scheduler implements the day-driven greedy scheduler. It signs
// up one library at a time, chosen from a periodically re-ranked candidate
// queue, and lets every activated library scan its fixed, valuation-sorted
// dispatch queue each day. A book is accepted at most once across the
// whole schedule; stale queue entries are skipped when popped.
package scheduler
