package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

type MusicHandler struct {
	music      MusicStore
	popularity Popularity
	votes      VoteStore
	logger     *zap.Logger
}

func NewMusicHandler(music MusicStore, p Popularity, votes VoteStore, logger *zap.Logger) *MusicHandler {
	return &MusicHandler{music: music, popularity: p, votes: votes, logger: logger}
}

func (h *MusicHandler) GetAlbums(c *gin.Context) {
	albums, err := h.music.Albums(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if albums == nil {
		albums = []models.Album{}
	}
	c.JSON(http.StatusOK, albums)
}

// GetAlbum returns the album with its reviews and tally and counts a view.
func (h *MusicHandler) GetAlbum(c *gin.Context) {
	ctx := c.Request.Context()

	album, err := h.music.AlbumBySlug(ctx, c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	target := models.Target{Kind: models.KindAlbum, ID: album.ID}
	if recordView(c, h.popularity, h.logger, target) {
		album.Views++
	}

	tally, err := h.votes.Tally(ctx, target)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"album": album, "votes": tally})
}

// GetBand returns the band with its discography and counts a view.
func (h *MusicHandler) GetBand(c *gin.Context) {
	ctx := c.Request.Context()

	band, err := h.music.BandBySlug(ctx, c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	target := models.Target{Kind: models.KindBand, ID: band.ID}
	if recordView(c, h.popularity, h.logger, target) {
		band.Views++
	}

	tally, err := h.votes.Tally(ctx, target)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"band": band, "votes": tally})
}

// CreateReview handles POST /api/albums/:slug/reviews (PROTECTED)
func (h *MusicHandler) CreateReview(c *gin.Context) {
	var input models.CreateReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	review := models.Review{
		UserID:   userID,
		Text:     input.Text,
		ParentID: input.ParentID,
	}
	if err := h.music.AddReview(c.Request.Context(), c.Param("slug"), &review); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// CreateStyle handles POST /api/styles (STAFF)
func (h *MusicHandler) CreateStyle(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	style := models.MusicStyle{Name: input.Name, Description: input.Description}
	if err := h.music.CreateStyle(c.Request.Context(), &style); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, style)
}

// CreateLabel handles POST /api/labels (STAFF)
func (h *MusicHandler) CreateLabel(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required,max=150"`
		Description string `json:"description" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	label := models.MusicLabel{Name: input.Name, Description: input.Description}
	if err := h.music.CreateLabel(c.Request.Context(), &label); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

// CreateBand handles POST /api/bands (STAFF)
func (h *MusicHandler) CreateBand(c *gin.Context) {
	var input models.CreateBandRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	band := models.Band{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Country:     input.Country,
	}
	if err := h.music.CreateBand(c.Request.Context(), &band, input.Styles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, band)
}

// CreateAlbum handles POST /api/albums (STAFF)
func (h *MusicHandler) CreateAlbum(c *gin.Context) {
	var input models.CreateAlbumRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	album := models.Album{
		Name:            input.Name,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		ReleaseDate:     input.ReleaseDate,
		BandID:          input.BandID,
		LabelID:         input.LabelID,
		Cover:           input.Cover,
	}
	if err := h.music.CreateAlbum(c.Request.Context(), &album); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, album)
}
