package handlers

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/metalnews/backend/internal/content"
	"github.com/emilythestrangee/metalnews/backend/internal/middleware"
	"github.com/emilythestrangee/metalnews/backend/internal/models"
	"github.com/emilythestrangee/metalnews/backend/internal/popularity"
	"github.com/emilythestrangee/metalnews/backend/internal/votes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for AuthMiddleware.
func asUser(id int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id > 0 {
			c.Set(middleware.UserIDKey, id)
		}
		c.Next()
	}
}

type castCall struct {
	voterID int
	target  models.Target
	value   models.VoteValue
}

type fakeVotes struct {
	outcome votes.Outcome
	tally   votes.Tally
	err     error
	calls   []castCall
}

func (f *fakeVotes) Cast(_ context.Context, voterID int, target models.Target, value models.VoteValue) (votes.Outcome, error) {
	f.calls = append(f.calls, castCall{voterID, target, value})
	if voterID <= 0 {
		return votes.Outcome{}, votes.ErrUnauthorized
	}
	return f.outcome, f.err
}

func (f *fakeVotes) Tally(context.Context, models.Target) (votes.Tally, error) {
	return f.tally, f.err
}

type fakePopularity struct {
	mu      sync.Mutex
	top     []popularity.Ranked
	topErr  error
	viewErr error
	views   []models.Target
	lastN   int
	lastW   popularity.Window
}

func (f *fakePopularity) Top(_ context.Context, w popularity.Window, n int) ([]popularity.Ranked, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastW, f.lastN = w, n
	return f.top, f.topErr
}

func (f *fakePopularity) TopAll(_ context.Context, n int) (map[popularity.Window][]popularity.Ranked, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastN = n
	if f.topErr != nil {
		return nil, f.topErr
	}
	out := make(map[popularity.Window][]popularity.Ranked, len(popularity.Windows))
	for _, w := range popularity.Windows {
		out[w] = f.top
	}
	return out, nil
}

func (f *fakePopularity) RecordView(_ context.Context, target models.Target) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.viewErr != nil {
		return f.viewErr
	}
	f.views = append(f.views, target)
	return nil
}

type fakePosts struct {
	post       *models.Post
	page       content.Page[models.Post]
	categories []models.Category
	albums     []models.Album
	comments   []models.Comment
	tree       []*models.Comment
	err        error
	addErr     error

	lastCategory string
	added        *models.Comment
	created      *models.Post
	update       *content.PostUpdate
	deleted      []string
	deletedIDs   []int
}

func (f *fakePosts) ListPosts(_ context.Context, page int, category string) (content.Page[models.Post], error) {
	f.lastCategory = category
	p := f.page
	p.Page = page
	return p, f.err
}

func (f *fakePosts) PostBySlug(context.Context, string) (*models.Post, error) {
	if f.post == nil {
		return nil, content.ErrNotFound
	}
	p := *f.post
	return &p, nil
}

func (f *fakePosts) CreatePost(_ context.Context, post *models.Post, _, _ []string) error {
	post.ID = 1
	f.created = post
	return f.err
}

func (f *fakePosts) UpdatePost(_ context.Context, slug string, u content.PostUpdate) (*models.Post, error) {
	if f.post == nil || f.post.Slug != slug {
		return nil, content.ErrNotFound
	}
	f.update = &u
	p := *f.post
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	return &p, f.err
}

func (f *fakePosts) DeletePost(_ context.Context, slug string) error {
	if f.post == nil || f.post.Slug != slug {
		return content.ErrNotFound
	}
	f.deleted = append(f.deleted, slug)
	return f.err
}

func (f *fakePosts) DeleteComment(_ context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakePosts) Categories(context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

func (f *fakePosts) CreateCategory(_ context.Context, category *models.Category) error {
	return f.err
}

func (f *fakePosts) Albums(context.Context) ([]models.Album, error) {
	return f.albums, f.err
}

func (f *fakePosts) LatestComments(_ context.Context, n int) ([]models.Comment, error) {
	if len(f.comments) > n {
		return f.comments[:n], f.err
	}
	return f.comments, f.err
}

func (f *fakePosts) CommentTree(context.Context, int) ([]*models.Comment, error) {
	return f.tree, f.err
}

func (f *fakePosts) AddComment(_ context.Context, _ string, comment *models.Comment) error {
	if f.addErr != nil {
		return f.addErr
	}
	comment.ID = 11
	f.added = comment
	return nil
}

type fakeMusic struct {
	album  *models.Album
	band   *models.Band
	err    error
	review *models.Review
}

func (f *fakeMusic) Albums(context.Context) ([]models.Album, error) { return nil, f.err }

func (f *fakeMusic) AlbumBySlug(context.Context, string) (*models.Album, error) {
	if f.album == nil {
		return nil, content.ErrNotFound
	}
	a := *f.album
	return &a, nil
}

func (f *fakeMusic) BandBySlug(context.Context, string) (*models.Band, error) {
	if f.band == nil {
		return nil, content.ErrNotFound
	}
	b := *f.band
	return &b, nil
}

func (f *fakeMusic) AddReview(_ context.Context, _ string, review *models.Review) error {
	f.review = review
	return f.err
}

func (f *fakeMusic) CreateStyle(context.Context, *models.MusicStyle) error { return f.err }
func (f *fakeMusic) CreateLabel(context.Context, *models.MusicLabel) error { return f.err }
func (f *fakeMusic) CreateBand(context.Context, *models.Band, []string) error {
	return f.err
}
func (f *fakeMusic) CreateAlbum(context.Context, *models.Album) error { return f.err }
