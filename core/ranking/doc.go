// Package ranking derives the composite desirability scores used by the
// scheduler: a per-book valuation cached once per run, and a per-library
// rank recomputed whenever the scheduler refreshes its candidate queue.
//
// Every feature is mapped to a percentile (see package stats) before being
// blended with the coefficients of Weights, so features with different
// units remain comparable.
package ranking
