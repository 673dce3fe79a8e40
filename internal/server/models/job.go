package models

import "time"

// JobSearchParams are the already-mapped wire values for the job report
// procedure. Nil pointers and empty strings are omitted from the call,
// except SortBy and SortDirection which are always sent (NULL when nil).
type JobSearchParams struct {
	JobID           string
	DateRangeFilter *int
	StartDate       *time.Time
	EndDate         *time.Time
	JobStatus       string
	SortBy          *int
	SortDirection   *int
	ProjectManager  string
	CustContactIDs  string
}
