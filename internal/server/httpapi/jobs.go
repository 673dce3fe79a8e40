package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/server/services"
	"github.com/gin-gonic/gin"
)

// stringList accepts either a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = nil
	} else {
		*l = []string{one}
	}
	return nil
}

type jobSearchRequest struct {
	JobID          string     `json:"jobId"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	FilterRange    string     `json:"filterRange"`
	JobStatus      stringList `json:"jobStatus"`
	SortBy         string     `json:"sortBy"`
	SortDirection  string     `json:"sortDirection"`
	ProjectManager string     `json:"projectManager"`
	CustCntctIDs   string     `json:"custCntctIds"`
}

func (h *Handler) GetJob(c *gin.Context) {
	rows, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    rows,
			"message": "Job details retrieved successfully",
		})
	case respondValidation(c, err):
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Job not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error while fetching job details",
		})
	}
}

func (h *Handler) SearchJobs(c *gin.Context) {
	var req jobSearchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid search payload."})
			return
		}
	}

	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	if claims, ok := ClaimsFrom(c); ok {
		h.log.Debug(c.Request.Context(), "job search", "username", claims.Username)
	}

	page, err := h.jobs.Search(c.Request.Context(), services.JobQuery{
		JobID:          req.JobID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		FilterRange:    req.FilterRange,
		JobStatus:      req.JobStatus,
		SortBy:         req.SortBy,
		SortDirection:  req.SortDirection,
		ProjectManager: req.ProjectManager,
		CustContactIDs: req.CustCntctIDs,
		Offset:         offset,
		Limit:          limit,
	})
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error while searching jobs",
		})
		return
	}

	if page.Pagination.Total == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":    false,
			"message":    "No items found",
			"data":       page.Rows,
			"pagination": page.Pagination,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Jobs found successfully",
		"data":       page.Rows,
		"pagination": page.Pagination,
	})
}

// queryInt reads an optional integer query parameter; absent means 0.
// It writes a 400 and reports false when the value is not an integer.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + name + " parameter."})
		return 0, false
	}
	return v, true
}
