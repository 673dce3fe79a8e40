package httpapi

import (
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/config"
	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

// NewRouter wires gin routes and middleware.
func NewRouter(cfg *config.Config, h *Handler, m *metrics.Metrics, log logging.Logger) *gin.Engine {
	r := gin.New()
	// ClientIP is the socket peer; forwarding headers are not trusted
	_ = r.SetTrustedProxies(nil)

	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(Metrics(m))
	r.Use(SecurityHeaders())
	r.Use(CORS(cfg.CORSAllowedOrigins))

	limiter := NewRateLimiter(cfg.RateLimitPerMinute).Handler()

	r.GET("/", h.Welcome)
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.POST("/login", limiter, h.Login)
	r.POST("/refresh-token", limiter, h.RefreshToken)

	authed := r.Group("/", BearerAuth(h.sessions))
	{
		authed.GET("/job/:id", h.GetJob)
		authed.POST("/jobs/search", h.SearchJobs)
	}

	return r
}
