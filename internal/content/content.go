// Package content reads and writes the site's articles, comments, albums,
// bands and reviews.
package content

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("already exists")
	ErrInvalidParent = errors.New("parent does not belong to the same thread")
)

// PageSize is the number of articles per listing page.
const PageSize = 6

type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
}

func newPage[T any](items []T, page int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: PageSize,
		Total:    total,
		Pages:    int((total + PageSize - 1) / PageSize),
	}
}

func paginate(page int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * PageSize).Limit(PageSize)
	}
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// translate maps gorm errors onto the package's sentinels.
func translate(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// deleteVotes removes the votes on the given targets. Votes reference their
// target by kind and id without a foreign key, so deletes clean them up here.
func deleteVotes(tx *gorm.DB, kind models.TargetKind, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	err := tx.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&models.Vote{}).Error
	return translate("delete "+string(kind)+" votes", err)
}
