package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/metalnews/backend/internal/content"
	"github.com/emilythestrangee/metalnews/backend/internal/middleware"
	"github.com/emilythestrangee/metalnews/backend/internal/models"
	"github.com/emilythestrangee/metalnews/backend/internal/popularity"
	"github.com/emilythestrangee/metalnews/backend/internal/votes"
)

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// writeError maps domain errors to status codes. Unexpected errors are
// logged and reported without detail.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound),
		errors.Is(err, votes.ErrTargetNotFound),
		errors.Is(err, popularity.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, votes.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, votes.ErrInvalidValue),
		errors.Is(err, models.ErrUnknownKind),
		errors.Is(err, popularity.ErrUnknownWindow),
		errors.Is(err, content.ErrInvalidParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, content.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parsePage(c *gin.Context) (int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return 0, false
	}
	return page, true
}

// parseTarget reads the :kind and :id path parameters.
func parseTarget(c *gin.Context) (models.Target, bool) {
	kind, err := models.ParseTargetKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Target{}, false
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return models.Target{}, false
	}
	return models.Target{Kind: kind, ID: id}, true
}

// recordView counts a detail page load. Failures are logged and otherwise
// ignored; a missed view is acceptable.
func recordView(c *gin.Context, p Popularity, logger *zap.Logger, target models.Target) bool {
	if err := p.RecordView(c.Request.Context(), target); err != nil {
		logger.Warn("record view failed", zap.Stringer("target", target), zap.Error(err))
		return false
	}
	return true
}
