package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

// LatestComments returns the n newest comments across all articles.
func (r *Repository) LatestComments(ctx context.Context, n int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(n).Find(&comments).Error
	if err != nil {
		return nil, translate("latest comments", err)
	}
	return comments, nil
}

// CommentTree returns the article's top-level comments with replies nested
// under their parents, oldest first at every level.
func (r *Repository) CommentTree(ctx context.Context, postID int) ([]*models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&comments).Error
	if err != nil {
		return nil, translate("load comments", err)
	}
	return BuildTree(comments), nil
}

// BuildTree links flat comments into a forest. A comment whose parent is not
// in the slice becomes a root.
func BuildTree(comments []models.Comment) []*models.Comment {
	nodes := make(map[int]*models.Comment, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &comments[i]
	}

	roots := make([]*models.Comment, 0)
	for i := range comments {
		c := &comments[i]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && parent != c {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

// AddComment attaches an anonymous comment to the article. A reply must
// point at a comment of the same article.
func (r *Repository) AddComment(ctx context.Context, postSlug string, comment *models.Comment) error {
	db := r.db.WithContext(ctx)

	var post models.Post
	if err := db.Select("id").Where("slug = ?", postSlug).Take(&post).Error; err != nil {
		return translate("post "+postSlug, err)
	}
	comment.PostID = post.ID

	if comment.ParentID != nil {
		var n int64
		if err := db.Model(&models.Comment{}).
			Where("id = ? AND post_id = ?", *comment.ParentID, post.ID).
			Count(&n).Error; err != nil {
			return translate("parent comment", err)
		}
		if n == 0 {
			return ErrInvalidParent
		}
	}

	return translate("create comment", db.Create(comment).Error)
}

// DeleteComment removes a comment and its votes. Replies stay and become
// top-level comments.
func (r *Repository) DeleteComment(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id").Take(&comment, id).Error; err != nil {
			return translate("comment", err)
		}
		if err := deleteVotes(tx, models.KindComment, comment.ID); err != nil {
			return err
		}
		return translate("delete comment", tx.Delete(&comment).Error)
	})
}
