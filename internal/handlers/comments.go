package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

type CommentHandler struct {
	posts  PostStore
	logger *zap.Logger
}

func NewCommentHandler(posts PostStore, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{posts: posts, logger: logger}
}

// CreateComment handles POST /api/posts/:slug/comments. Commenting is open
// to anonymous readers who leave a name and email.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		Name:     input.Name,
		Email:    input.Email,
		Text:     input.Text,
		ParentID: input.ParentID,
	}

	if err := h.posts.AddComment(c.Request.Context(), c.Param("slug"), &comment); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/comments/:id (STAFF)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.posts.DeleteComment(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Info("comment deleted", zap.Int("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
