package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
	"github.com/emilythestrangee/metalnews/backend/internal/popularity"
	"github.com/emilythestrangee/metalnews/backend/internal/votes"
)

const (
	defaultTopN = 3
	maxTopN     = 50
)

type VoteHandler struct {
	store      VoteStore
	popularity Popularity
	logger     *zap.Logger
}

func NewVoteHandler(store VoteStore, p Popularity, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{store: store, popularity: p, logger: logger}
}

// VoteResponse is what the like/dislike buttons read back. Result is false
// only when the vote was just removed.
type VoteResponse struct {
	Result       bool  `json:"result"`
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
	SumRating    int64 `json:"sum_rating"`
}

// Like handles POST /api/votes/:kind/:id/like (PROTECTED)
func (h *VoteHandler) Like(c *gin.Context) {
	h.cast(c, models.Like)
}

// Dislike handles POST /api/votes/:kind/:id/dislike (PROTECTED)
func (h *VoteHandler) Dislike(c *gin.Context) {
	h.cast(c, models.Dislike)
}

func (h *VoteHandler) cast(c *gin.Context, value models.VoteValue) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}

	// the route is behind AuthMiddleware; a missing id still gets refused by the store
	voterID, _ := extractUserID(c)

	out, err := h.store.Cast(c.Request.Context(), voterID, target, value)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, VoteResponse{
		Result:       out.Result != votes.Removed,
		LikeCount:    out.Tally.Likes,
		DislikeCount: out.Tally.Dislikes,
		SumRating:    out.Tally.SumRating,
	})
}

// GetVotes returns the current tally of a target.
func (h *VoteHandler) GetVotes(c *gin.Context) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}

	tally, err := h.store.Tally(c.Request.Context(), target)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}

// Popular returns the top articles of one window.
func (h *VoteHandler) Popular(c *gin.Context) {
	w, err := popularity.ParseWindow(c.Param("window"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTopN)))
	if err != nil || limit < 1 || limit > maxTopN {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
		return
	}

	top, err := h.popularity.Top(c.Request.Context(), w, limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, top)
}
