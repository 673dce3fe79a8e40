package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/config"
	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/repomanager"
)

// unsetDate is the placeholder legacy clients send for "no date".
var unsetDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// JobQuery is a job search as received from a client, before its
// enumerated values are mapped.
type JobQuery struct {
	JobID          string
	StartDate      string
	EndDate        string
	FilterRange    string
	JobStatus      []string
	SortBy         string
	SortDirection  string
	ProjectManager string
	CustContactIDs string
	Offset         int
	Limit          int
}

// Pagination describes a page cut out of the full result set.
type Pagination struct {
	Offset          int  `json:"offset"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type JobPage struct {
	Rows       []models.Row
	Pagination Pagination
}

// JobService forwards job report requests to the stored procedures.
type JobService struct {
	db           dbx.DBTX
	repomanager  repomanager.RepositoryManager
	store        storeCaller
	log          logging.Logger
	defaultLimit int
}

func NewJobService(db dbx.DBTX, m repomanager.RepositoryManager, cfg *config.Config, mt *metrics.Metrics, log logging.Logger) *JobService {
	return &JobService{
		db:           db,
		repomanager:  m,
		store:        storeCaller{timeout: cfg.StoreCallTimeout, metrics: mt},
		log:          log,
		defaultLimit: cfg.DefaultPageLimit,
	}
}

// Search runs the job report and returns the requested page of it.
func (s *JobService) Search(ctx context.Context, q JobQuery) (*JobPage, error) {
	if q.Limit == 0 {
		q.Limit = s.defaultLimit
	}
	if q.Offset < 0 {
		return nil, validationErrorf("offset must not be negative")
	}
	if q.Limit < 0 {
		return nil, validationErrorf("limit must be positive")
	}

	params, err := searchParams(q)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Jobs(s.db)
	rows, err := call(ctx, s.store, jobs.ProcSearch, func(ctx context.Context) ([]models.Row, error) {
		return repo.Search(ctx, params)
	})
	if err != nil {
		s.log.Error(ctx, "job search failed", "error", err)
		return nil, fmt.Errorf("%w: job search: %v", common.ErrorInternal, err)
	}

	s.log.Debug(ctx, "job search", "rows", len(rows), "offset", q.Offset, "limit", q.Limit)

	return paginate(rows, q.Offset, q.Limit), nil
}

// GetByID returns the report rows of one job. An empty result is
// common.ErrorNotFound.
func (s *JobService) GetByID(ctx context.Context, rawID string) ([]models.Row, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil || id <= 0 {
		return nil, validationErrorf("Job ID must be a positive integer.")
	}

	repo := s.repomanager.Jobs(s.db)
	rows, err := call(ctx, s.store, jobs.ProcGetByID, func(ctx context.Context) ([]models.Row, error) {
		return repo.GetByID(ctx, id)
	})
	if err != nil {
		s.log.Error(ctx, "job lookup failed", "jobId", id, "error", err)
		return nil, fmt.Errorf("%w: job lookup: %v", common.ErrorInternal, err)
	}
	if len(rows) == 0 {
		return nil, common.ErrorNotFound
	}

	return rows, nil
}

func searchParams(q JobQuery) (models.JobSearchParams, error) {
	var p models.JobSearchParams
	var errs []error

	p.JobID = strings.TrimSpace(q.JobID)
	p.ProjectManager = q.ProjectManager
	p.CustContactIDs = q.CustContactIDs

	if q.FilterRange != "" {
		v, err := lookup(dateRangeFilters, "filterRange", q.FilterRange, false)
		errs = append(errs, err)
		// "None" leaves the filter to the procedure default
		if err == nil && v != DateRangeNone {
			w := v.Wire()
			p.DateRangeFilter = &w
		}
	}

	start, err := parseDate("startDate", q.StartDate)
	errs = append(errs, err)
	p.StartDate = start

	end, err := parseDate("endDate", q.EndDate)
	errs = append(errs, err)
	p.EndDate = end

	if len(q.JobStatus) > 0 {
		codes := make([]string, 0, len(q.JobStatus))
		for _, st := range q.JobStatus {
			code, err := lookup(jobStatuses, "jobStatus", st, false)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			codes = append(codes, code.Wire())
		}
		p.JobStatus = strings.Join(codes, ",")
	}

	if q.SortBy != "" {
		v, err := lookup(sortFields, "sortBy", q.SortBy, false)
		errs = append(errs, err)
		if err == nil {
			w := v.Wire()
			p.SortBy = &w
		}
	}

	if q.SortDirection != "" {
		v, err := lookup(sortDirections, "sortDirection", q.SortDirection, true)
		errs = append(errs, err)
		if err == nil {
			w := v.Wire()
			p.SortDirection = &w
		}
	}

	for _, err := range errs {
		if err != nil {
			return models.JobSearchParams{}, err
		}
	}

	return p, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339 and keeps only the calendar date.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		return nil, validationErrorf("Invalid %s %q. Expected YYYY-MM-DD.", field, raw)
	}

	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if d.Equal(unsetDate) {
		return nil, nil
	}

	return &d, nil
}

func paginate(rows []models.Row, offset, limit int) *JobPage {
	total := len(rows)

	page := &JobPage{
		Rows: []models.Row{},
		Pagination: Pagination{
			Offset:          offset,
			Limit:           limit,
			Total:           total,
			TotalPages:      int(math.Ceil(float64(total) / float64(limit))),
			CurrentPage:     offset/limit + 1,
			HasNextPage:     offset+limit < total,
			HasPreviousPage: offset > 0,
		},
	}

	if total == 0 {
		page.Pagination.HasPreviousPage = false
		page.Pagination.CurrentPage = 1
		return page
	}

	if offset < total {
		end := min(offset+limit, total)
		page.Rows = rows[offset:end]
	}

	return page
}
