package services

import (
	"sort"
	"strings"
)

// JobStatus is a job state the report can filter on.
type JobStatus int

const (
	JobStatusInProgress JobStatus = iota + 1
	JobStatusForwardedToAccountant
	JobStatusBilledAndClosed
	JobStatusClosed
	JobStatusAll
)

// Wire returns the status code list the job report procedure filters on.
func (s JobStatus) Wire() string {
	switch s {
	case JobStatusInProgress:
		return "1"
	case JobStatusForwardedToAccountant:
		return "2"
	case JobStatusBilledAndClosed:
		return "-1"
	case JobStatusClosed:
		return "-2"
	case JobStatusAll:
		return "1,2,-1,-2"
	}
	return ""
}

// DateRangeFilter selects which job date the start/end bounds apply to.
// The constant values are the wire values.
type DateRangeFilter int

const (
	DateRangeNone DateRangeFilter = iota
	DateRangeStartDate
	DateRangeEndDate
	DateRangeAll
)

func (f DateRangeFilter) Wire() int { return int(f) }

// SortField is a sortable report column; the constant values are the wire values.
type SortField int

const (
	SortByJobID SortField = iota + 1
	SortByJobStartDate
	SortByJobEndDate
	SortByStatusCode
	SortByProjectManager
)

func (f SortField) Wire() int { return int(f) }

type SortDirection int

const (
	SortDescending SortDirection = 0
	SortAscending  SortDirection = 1
)

func (d SortDirection) Wire() int { return int(d) }

// Names accepted from clients.
var (
	jobStatuses = map[string]JobStatus{
		"In Progress":             JobStatusInProgress,
		"Forwarded to Accountant": JobStatusForwardedToAccountant,
		"Billed and Closed":       JobStatusBilledAndClosed,
		"Closed":                  JobStatusClosed,
		"All":                     JobStatusAll,
	}

	dateRangeFilters = map[string]DateRangeFilter{
		"None":      DateRangeNone,
		"StartDate": DateRangeStartDate,
		"EndDate":   DateRangeEndDate,
		"All":       DateRangeAll,
	}

	sortFields = map[string]SortField{
		"Job_ID":          SortByJobID,
		"Job_Start_Date":  SortByJobStartDate,
		"Job_End_Date":    SortByJobEndDate,
		"Status_Code":     SortByStatusCode,
		"Project_Manager": SortByProjectManager,
	}

	sortDirections = map[string]SortDirection{
		"Ascending":  SortAscending,
		"Descending": SortDescending,
	}
)

// lookup parses key through table. An unknown key is a *ValidationError
// naming the accepted keys.
func lookup[V any](table map[string]V, field, key string, foldCase bool) (V, error) {
	if v, ok := table[key]; ok {
		return v, nil
	}
	if foldCase {
		for k, v := range table {
			if strings.EqualFold(k, key) {
				return v, nil
			}
		}
	}

	var zero V
	return zero, validationErrorf("Invalid %s %q. Allowed values: %s.", field, key, strings.Join(keys(table), ", "))
}

func keys[V any](table map[string]V) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
