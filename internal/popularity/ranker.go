// Package popularity ranks articles by views over publication windows and
// maintains the view counters of every content kind.
package popularity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

var ErrTargetNotFound = errors.New("content not found")

// Ranked is one entry of a top list. Post points at the loaded article.
type Ranked struct {
	Post     *models.Post `json:"post"`
	SumViews int64        `json:"sum_views"`
	SumVotes int64        `json:"sum_votes"`
}

type rankRow struct {
	PostID   int
	SumViews int64
	SumVotes int64
}

type Ranker struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewRanker(db *gorm.DB, logger *zap.Logger) *Ranker {
	return &Ranker{
		db:     db,
		logger: logger.Named("popularity"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Top returns up to n articles published within the window, ordered by views
// descending, then by vote sum ascending, then by id.
func (r *Ranker) Top(ctx context.Context, w Window, n int) ([]Ranked, error) {
	if n <= 0 {
		return []Ranked{}, nil
	}

	q := r.db.WithContext(ctx).Table("posts").
		Select("posts.id AS post_id, posts.views AS sum_views, COALESCE(SUM(votes.value), 0) AS sum_votes").
		Joins("LEFT JOIN votes ON votes.target_kind = ? AND votes.target_id = posts.id", models.KindArticle).
		Group("posts.id").
		Order("sum_views DESC, sum_votes ASC, posts.id ASC").
		Limit(n)

	if d, bounded := w.Duration(); bounded {
		now := r.now()
		q = q.Where("posts.published_at BETWEEN ? AND ?", now.Add(-d), now)
	}

	var rows []rankRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("rank %s: %w", w, err)
	}
	if len(rows) == 0 {
		return []Ranked{}, nil
	}

	ids := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.PostID
	}

	var posts []models.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("load ranked posts: %w", err)
	}
	byID := make(map[int]*models.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
	}

	ranked := make([]Ranked, 0, len(rows))
	for _, row := range rows {
		// a post deleted between the two queries just drops out
		if p, ok := byID[row.PostID]; ok {
			ranked = append(ranked, Ranked{Post: p, SumViews: row.SumViews, SumVotes: row.SumVotes})
		}
	}

	r.logger.Debug("ranked posts", zap.Stringer("window", w), zap.Int("count", len(ranked)))
	return ranked, nil
}

// TopAll computes the top n for every window concurrently. Each window is a
// separate query, so they may see slightly different data.
func (r *Ranker) TopAll(ctx context.Context, n int) (map[Window][]Ranked, error) {
	results := make([][]Ranked, len(Windows))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range Windows {
		g.Go(func() error {
			top, err := r.Top(ctx, w, n)
			if err != nil {
				return err
			}
			results[i] = top
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Window][]Ranked, len(Windows))
	for i, w := range Windows {
		out[w] = results[i]
	}
	return out, nil
}
