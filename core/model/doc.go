// Package model defines the immutable instance description (books,
// libraries, day budget), the book occurrence index derived from it and
// the Solution produced by the scheduler.
package model
