// Package search tunes the ranking weights by treating one scheduler run
// as an opaque objective: a weight vector is mapped to the negated
// evaluator score of the solution it produces. Trials run sequentially;
// every trial gets its own scheduler run while the instance and its
// occurrence index are shared.
package search
