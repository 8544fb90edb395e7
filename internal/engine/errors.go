package engine

import "errors"

var (
	// ErrDataUnavailable marks a source the dashboard cannot work from:
	// the fetch failed, the body was empty, or a required column is missing.
	ErrDataUnavailable = errors.New("dataset unavailable")

	// ErrDivisionUndefined is returned by AverageGroupSize over a table
	// with zero distinct groups.
	ErrDivisionUndefined = errors.New("division undefined: no groups")
)
