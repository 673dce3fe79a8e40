package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/escc-report-api/internal/common"
	"github.com/dmitrijs2005/escc-report-api/internal/server/services"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required."})
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		if respondValidation(c, err) {
			return
		}

		var lerr *services.LoginError
		if errors.As(err, &lerr) {
			status := http.StatusUnauthorized
			if errors.Is(err, services.ErrAccessDenied) {
				status = http.StatusForbidden
			}
			c.JSON(status, gin.H{
				"message":       lerr.Message,
				"loginAttempts": lerr.LoginAttempts,
				"errorCode":     lerr.ErrorCode,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"user":          session.User,
		"token":         session.AccessToken,
		"refresh_token": session.RefreshToken,
	})
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token is required."})
		return
	}

	session, err := h.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":       "Token refreshed successfully",
			"token":         session.AccessToken,
			"refresh_token": session.RefreshToken,
		})
	case respondValidation(c, err):
	case errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token has expired. Please login again."})
	case errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
	}
}
