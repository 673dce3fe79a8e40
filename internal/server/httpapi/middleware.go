package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/auth"
	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const claimsKey = "claims"

// RequestLogger tags the request context with a request id and logs one
// line per request, graded by status.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := strings.TrimSpace(c.GetHeader(common.RequestIDHeaderName))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(common.RequestIDHeaderName, requestID)

		ctx := logging.ContextWith(c.Request.Context(), "request_id", requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			log.Error(ctx, "http_request", args...)
		case status >= 400:
			log.Warn(ctx, "http_request", args...)
		default:
			log.Info(ctx, "http_request", args...)
		}
	}
}

// Metrics records request counts and latencies by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// SecurityHeaders sets a conservative subset of the usual hardening headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

// CORS answers preflight requests and echoes allowed origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if !originAllowed(origin, allowedOrigins) {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+common.RequestIDHeaderName)
		if containsWildcard(allowedOrigins) {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == "*" || strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// BearerAuth requires a valid access token in the Authorization header.
func BearerAuth(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		claims, err := sessions.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(logging.ContextWith(c.Request.Context(), "userId", claims.UserID))
		c.Next()
	}
}

// ClaimsFrom returns the claims BearerAuth attached to the request.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
