package content

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
	"github.com/emilythestrangee/metalnews/backend/internal/slug"
)

// ListPosts returns one page of published articles, newest first, optionally
// restricted to a category.
func (r *Repository) ListPosts(ctx context.Context, page int, categorySlug string) (Page[models.Post], error) {
	if page < 1 {
		page = 1
	}
	db := r.db.WithContext(ctx)

	q := db.Model(&models.Post{}).Where("status = ?", models.StatusPublished)
	if categorySlug != "" {
		var category models.Category
		if err := db.Where("slug = ?", categorySlug).Take(&category).Error; err != nil {
			return Page[models.Post]{}, translate("category "+categorySlug, err)
		}
		q = q.Where("id IN (?)", db.Table("post_categories").
			Select("post_id").
			Where("category_id = ?", category.ID))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[models.Post]{}, translate("count posts", err)
	}

	var posts []models.Post
	err := q.Preload("Author").Preload("Categories").
		Order("published_at DESC, id DESC").
		Scopes(paginate(page)).
		Find(&posts).Error
	if err != nil {
		return Page[models.Post]{}, translate("list posts", err)
	}

	return newPage(posts, page, total), nil
}

func (r *Repository) PostBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").Preload("Tags").
		Where("slug = ?", postSlug).
		Take(&post).Error
	if err != nil {
		return nil, translate("post "+postSlug, err)
	}
	return &post, nil
}

// CreatePost stores the article with its categories, which must exist, and
// its tags, which are created on first use.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post, categorySlugs, tagTitles []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := resolveCategories(tx, categorySlugs)
		if err != nil {
			return err
		}
		post.Categories = categories

		tags, err := resolveTags(tx, tagTitles)
		if err != nil {
			return err
		}
		post.Tags = tags

		if err := tx.Omit("Categories.*", "Tags.*").Create(post).Error; err != nil {
			return translate("create post", err)
		}
		return nil
	})
}

// PostUpdate lists the fields an editor changes. Nil fields are left alone;
// a non-nil empty Categories or Tags clears them. The slug never changes so
// published links keep working.
type PostUpdate struct {
	Title       *string
	Content     *string
	Image       *string
	Status      *models.PostStatus
	PublishedAt *time.Time
	Categories  []string
	Tags        []string
}

// UpdatePost applies the update and returns the stored article.
func (r *Repository) UpdatePost(ctx context.Context, postSlug string, u PostUpdate) (*models.Post, error) {
	var post models.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slug = ?", postSlug).Take(&post).Error; err != nil {
			return translate("post "+postSlug, err)
		}

		changes := map[string]any{}
		if u.Title != nil {
			changes["title"] = *u.Title
		}
		if u.Content != nil {
			changes["content"] = *u.Content
		}
		if u.Image != nil {
			changes["image"] = *u.Image
		}
		if u.Status != nil {
			changes["status"] = *u.Status
		}
		if u.PublishedAt != nil {
			changes["published_at"] = *u.PublishedAt
		}
		if len(changes) > 0 {
			if err := tx.Model(&post).Updates(changes).Error; err != nil {
				return translate("update post", err)
			}
		}

		if u.Categories != nil {
			categories, err := resolveCategories(tx, u.Categories)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Omit("Categories.*").Association("Categories").Replace(categories); err != nil {
				return translate("replace categories", err)
			}
		}
		if u.Tags != nil {
			tags, err := resolveTags(tx, u.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Omit("Tags.*").Association("Tags").Replace(tags); err != nil {
				return translate("replace tags", err)
			}
		}

		id := post.ID
		post = models.Post{}
		return translate("reload post", tx.Preload("Author").Preload("Categories").Preload("Tags").
			Take(&post, id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the article together with its comments, its category
// and tag links, and every vote on the article or its comments.
func (r *Repository) DeletePost(ctx context.Context, postSlug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").Where("slug = ?", postSlug).Take(&post).Error; err != nil {
			return translate("post "+postSlug, err)
		}

		var commentIDs []int
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", post.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return translate("load comments", err)
		}

		if err := deleteVotes(tx, models.KindComment, commentIDs...); err != nil {
			return err
		}
		if err := deleteVotes(tx, models.KindArticle, post.ID); err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return translate("delete comments", err)
		}
		if err := tx.Select("Categories", "Tags").Delete(&post).Error; err != nil {
			return translate("delete post", err)
		}
		return nil
	})
}

func resolveCategories(tx *gorm.DB, slugs []string) ([]models.Category, error) {
	if len(slugs) == 0 {
		return []models.Category{}, nil
	}
	var categories []models.Category
	if err := tx.Where("slug IN ?", slugs).Find(&categories).Error; err != nil {
		return nil, translate("load categories", err)
	}
	if len(categories) != len(unique(slugs)) {
		return nil, translate("categories", gorm.ErrRecordNotFound)
	}
	return categories, nil
}

// resolveTags finds tags by slug, creating the missing ones.
func resolveTags(tx *gorm.DB, titles []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(titles))
	for _, title := range titles {
		tag := models.Tag{Title: title, Slug: slug.Make(title)}
		if err := tx.Where(models.Tag{Slug: tag.Slug}).Attrs(tag).FirstOrCreate(&tag).Error; err != nil {
			return nil, translate("tag "+title, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *Repository) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, translate("list categories", err)
	}
	return categories, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate("create category", r.db.WithContext(ctx).Create(category).Error)
}

func unique(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
