package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/slug"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is a news article. Views is bumped on every detail page load.
type Post struct {
	ID          int        `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null;index" json:"title"`
	Slug        string     `gorm:"size:200;uniqueIndex" json:"slug"`
	Content     string     `gorm:"not null" json:"content"`
	Image       string     `json:"image,omitempty"`
	AuthorID    int        `gorm:"not null" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
	Categories  []Category `gorm:"many2many:post_categories" json:"categories"`
	Tags        []Tag      `gorm:"many2many:post_tags" json:"tags"`
	Status      PostStatus `gorm:"size:10;not null;default:draft" json:"status"`
	PublishedAt time.Time  `gorm:"not null;index" json:"published_at"`
	Views       int        `gorm:"not null;default:0;check:chk_posts_views,views >= 0" json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = tx.NowFunc()
	}
	return nil
}

type CreatePostRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Content     string     `json:"content" binding:"required"`
	Image       string     `json:"image"`
	Status      PostStatus `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time `json:"published_at"`
	Categories  []string   `json:"categories"`
	Tags        []string   `json:"tags"`
}

// UpdatePostRequest carries a partial edit. Absent fields are left alone;
// an empty categories or tags list clears them.
type UpdatePostRequest struct {
	Title       *string     `json:"title" binding:"omitempty,min=1,max=200"`
	Content     *string     `json:"content" binding:"omitempty,min=1"`
	Image       *string     `json:"image"`
	Status      *PostStatus `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time  `json:"published_at"`
	Categories  []string    `json:"categories"`
	Tags        []string    `json:"tags"`
}

type Category struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
	Slug string `gorm:"size:50;uniqueIndex" json:"slug"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}

type Tag struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:50;not null" json:"title"`
	Slug  string `gorm:"size:50;uniqueIndex" json:"slug"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.Slug == "" {
		t.Slug = slug.Make(t.Title)
	}
	return nil
}
