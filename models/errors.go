package models

import "fmt"

// DataLoadError reports a missing, unreadable or malformed data source.
type DataLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loading %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("loading %s: %s", e.Source, e.Reason)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// InsufficientDataError reports that quintile binning degenerated
// because the income column has fewer than 5 distinct values.
type InsufficientDataError struct {
	DistinctIncomes int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("cannot form income quintiles: only %d distinct income values", e.DistinctIncomes)
}

// EmptyInputError reports an aggregation requested on zero filtered
// rows. Rates and means are undefined on empty input, so views fail
// explicitly instead of returning zeros.
type EmptyInputError struct {
	View string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s view: no rows match the current filters", e.View)
}

// UnmatchedJoinError is an informational diagnostic describing rows the
// inner join dropped. It is never fatal; preparation records it on the
// merged table so callers can surface the counts.
type UnmatchedJoinError struct {
	DroppedDemographics int
	DroppedServices     int
	DuplicateIDs        int
}

func (e *UnmatchedJoinError) Error() string {
	return fmt.Sprintf("join dropped %d demographics rows, %d service rows (%d duplicate ids)",
		e.DroppedDemographics, e.DroppedServices, e.DuplicateIDs)
}
