// Package httpapi exposes the report API over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/auth"
	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
	"github.com/dmitrijs2005/escc-report-api/internal/server/services"
	"github.com/gin-gonic/gin"
)

type SessionService interface {
	Login(ctx context.Context, username, password, callerIP string) (*services.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	Authenticate(accessToken string) (*auth.Claims, error)
}

type JobReporter interface {
	Search(ctx context.Context, q services.JobQuery) (*services.JobPage, error)
	GetByID(ctx context.Context, rawID string) ([]models.Row, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	sessions SessionService
	jobs     JobReporter
	db       Pinger
	log      logging.Logger
}

func NewHandler(sessions SessionService, jobs JobReporter, db Pinger, log logging.Logger) *Handler {
	return &Handler{sessions: sessions, jobs: jobs, db: db, log: log}
}

func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to ESCC Report API"})
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.log.Error(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondValidation writes a 400 when err stems from bad input.
func respondValidation(c *gin.Context, err error) bool {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
		return true
	}
	return false
}
