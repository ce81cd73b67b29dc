package handlers

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/content"
	"github.com/emilythestrangee/metalnews/backend/internal/models"
	"github.com/emilythestrangee/metalnews/backend/internal/popularity"
	"github.com/emilythestrangee/metalnews/backend/internal/votes"
)

// VoteStore casts votes and reports tallies.
type VoteStore interface {
	Cast(ctx context.Context, voterID int, target models.Target, value models.VoteValue) (votes.Outcome, error)
	Tally(ctx context.Context, target models.Target) (votes.Tally, error)
}

// Popularity ranks articles and counts views.
type Popularity interface {
	Top(ctx context.Context, w popularity.Window, n int) ([]popularity.Ranked, error)
	TopAll(ctx context.Context, n int) (map[popularity.Window][]popularity.Ranked, error)
	RecordView(ctx context.Context, target models.Target) error
}

type PostStore interface {
	ListPosts(ctx context.Context, page int, categorySlug string) (content.Page[models.Post], error)
	PostBySlug(ctx context.Context, slug string) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post, categorySlugs, tagTitles []string) error
	UpdatePost(ctx context.Context, slug string, u content.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, slug string) error
	Categories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	Albums(ctx context.Context) ([]models.Album, error)
	LatestComments(ctx context.Context, n int) ([]models.Comment, error)
	CommentTree(ctx context.Context, postID int) ([]*models.Comment, error)
	AddComment(ctx context.Context, postSlug string, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int) error
}

type MusicStore interface {
	Albums(ctx context.Context) ([]models.Album, error)
	AlbumBySlug(ctx context.Context, slug string) (*models.Album, error)
	BandBySlug(ctx context.Context, slug string) (*models.Band, error)
	AddReview(ctx context.Context, albumSlug string, review *models.Review) error
	CreateStyle(ctx context.Context, style *models.MusicStyle) error
	CreateLabel(ctx context.Context, label *models.MusicLabel) error
	CreateBand(ctx context.Context, band *models.Band, styleSlugs []string) error
	CreateAlbum(ctx context.Context, album *models.Album) error
}

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	Music   *MusicHandler
	Vote    *VoteHandler
	User    *UserHandler
}

// NewHandler wires every sub-handler to the shared database.
func NewHandler(db *gorm.DB, jwtSecret []byte, logger *zap.Logger) *Handler {
	repo := content.NewRepository(db)
	ranker := popularity.NewRanker(db, logger)
	store := votes.NewStore(db, logger)

	return &Handler{
		Auth:    NewAuthHandler(db, jwtSecret, logger),
		Post:    NewPostHandler(repo, ranker, store, logger),
		Comment: NewCommentHandler(repo, logger),
		Music:   NewMusicHandler(repo, ranker, store, logger),
		Vote:    NewVoteHandler(store, ranker, logger),
		User:    NewUserHandler(db, logger),
	}
}
