// Package jobs runs the job report procedures and returns their result sets
// as ordered rows.
package jobs

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/procedure"
)

const (
	ProcSearch  = "uspS_JobReport"
	ProcGetByID = "uspS_ReportModuleSelectedIDsByID"
)

type Repository interface {
	Search(ctx context.Context, params models.JobSearchParams) ([]models.Row, error)
	GetByID(ctx context.Context, id int) ([]models.Row, error)
}

// searchParams lists the procedure arguments in call order. Optional values
// are left out entirely so the procedure defaults apply; the sort pair is
// always sent.
func searchParams(p models.JobSearchParams) []procedure.Param {
	var out []procedure.Param

	if p.JobID != "" {
		out = append(out, procedure.Param{Name: "StrJobId", Value: p.JobID})
	}
	if p.DateRangeFilter != nil {
		out = append(out, procedure.Param{Name: "StrDateRangeFilter", Value: strconv.Itoa(*p.DateRangeFilter)})
	}
	if p.StartDate != nil {
		out = append(out, procedure.Param{Name: "StartDate", Value: *p.StartDate})
	}
	if p.EndDate != nil {
		out = append(out, procedure.Param{Name: "EndDate", Value: *p.EndDate})
	}
	if p.JobStatus != "" {
		out = append(out, procedure.Param{Name: "StrJobStatus", Value: p.JobStatus})
	}

	out = append(out,
		procedure.Param{Name: "StrSortBy", Value: intOrNil(p.SortBy)},
		procedure.Param{Name: "StrSortDirection", Value: intOrNil(p.SortDirection)},
	)

	if p.ProjectManager != "" {
		out = append(out, procedure.Param{Name: "StrProjectManager", Value: p.ProjectManager})
	}
	if p.CustContactIDs != "" {
		out = append(out, procedure.Param{Name: "Strcust_cntct_ids", Value: p.CustContactIDs})
	}

	return out
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}
