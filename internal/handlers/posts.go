package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/metalnews/backend/internal/content"
	"github.com/emilythestrangee/metalnews/backend/internal/models"
	"github.com/emilythestrangee/metalnews/backend/internal/popularity"
)

// homeLatestComments is how many recent comments the front page shows.
const homeLatestComments = 3

type PostHandler struct {
	posts      PostStore
	popularity Popularity
	votes      VoteStore
	logger     *zap.Logger
}

func NewPostHandler(posts PostStore, p Popularity, votes VoteStore, logger *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, popularity: p, votes: votes, logger: logger}
}

// Home assembles the front page: a page of articles, the sidebars and the
// popular lists for every window.
func (h *PostHandler) Home(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	var (
		posts      content.Page[models.Post]
		categories []models.Category
		albums     []models.Album
		comments   []models.Comment
		top        map[popularity.Window][]popularity.Ranked
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		posts, err = h.posts.ListPosts(ctx, page, "")
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.posts.Categories(ctx)
		return err
	})
	g.Go(func() (err error) {
		albums, err = h.posts.Albums(ctx)
		return err
	})
	g.Go(func() (err error) {
		comments, err = h.posts.LatestComments(ctx, homeLatestComments)
		return err
	})
	g.Go(func() (err error) {
		top, err = h.popularity.TopAll(ctx, defaultTopN)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(c, h.logger, err)
		return
	}

	resp := gin.H{
		"posts":      posts,
		"categories": categories,
		"albums":     albums,
		"comments":   comments,
	}
	for _, w := range popularity.Windows {
		resp["popular_"+w.String()] = top[w]
	}
	c.JSON(http.StatusOK, resp)
}

// GetPosts lists published articles, six per page, optionally filtered by
// ?category=<slug>.
func (h *PostHandler) GetPosts(c *gin.Context) {
	h.list(c, c.Query("category"))
}

// GetCategoryPosts lists published articles of one category.
func (h *PostHandler) GetCategoryPosts(c *gin.Context) {
	h.list(c, c.Param("slug"))
}

func (h *PostHandler) list(c *gin.Context, category string) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), page, category)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetCategories(c *gin.Context) {
	categories, err := h.posts.Categories(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// GetPost returns a single article by slug with its tally and comment tree.
// Every call counts as a view.
func (h *PostHandler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()

	post, err := h.posts.PostBySlug(ctx, c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	target := models.Target{Kind: models.KindArticle, ID: post.ID}
	if recordView(c, h.popularity, h.logger, target) {
		post.Views++
	}

	tally, err := h.votes.Tally(ctx, target)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	comments, err := h.posts.CommentTree(ctx, post.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"votes":    tally,
		"comments": comments,
	})
}

// CreatePost handles POST /api/posts (STAFF)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	post := models.Post{
		Title:    input.Title,
		Content:  input.Content,
		Image:    input.Image,
		AuthorID: authorID,
		Status:   input.Status,
	}
	if input.PublishedAt != nil {
		post.PublishedAt = *input.PublishedAt
	}

	if err := h.posts.CreatePost(c.Request.Context(), &post, input.Categories, input.Tags); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /api/posts/:slug (STAFF)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), c.Param("slug"), content.PostUpdate{
		Title:       input.Title,
		Content:     input.Content,
		Image:       input.Image,
		Status:      input.Status,
		PublishedAt: input.PublishedAt,
		Categories:  input.Categories,
		Tags:        input.Tags,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/:slug (STAFF). Comments and votes go
// with the article.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postSlug := c.Param("slug")
	if err := h.posts.DeletePost(c.Request.Context(), postSlug); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Info("post deleted", zap.String("slug", postSlug))
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// CreateCategory handles POST /api/categories (STAFF)
func (h *PostHandler) CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required,max=50"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{Name: input.Name}
	if err := h.posts.CreateCategory(c.Request.Context(), &category); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
