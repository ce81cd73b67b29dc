package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

type UserHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserHandler(db *gorm.DB, logger *zap.Logger) *UserHandler {
	return &UserHandler{db: db, logger: logger}
}

// GetUserProfile returns a user's public profile with their album reviews.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		writeError(c, h.logger, err)
		return
	}

	reviews := []models.Review{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		writeError(c, h.logger, err)
		return
	}

	var articles int64
	if err := h.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND status = ?", userID, models.StatusPublished).
		Count(&articles).Error; err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"is_staff":   user.IsStaff,
			"created_at": user.CreatedAt,
		},
		"reviews":       reviews,
		"article_count": articles,
	})
}
