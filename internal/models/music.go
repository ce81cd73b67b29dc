package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/slug"
)

type MusicStyle struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;index" json:"name"`
	Description string `json:"description"`
	Slug        string `gorm:"size:160;uniqueIndex" json:"slug"`
}

func (s *MusicStyle) BeforeCreate(*gorm.DB) error {
	if s.Slug == "" {
		s.Slug = slug.Make(s.Name)
	}
	return nil
}

// Band is a band or solo artist.
type Band struct {
	ID          int          `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:200;not null" json:"name"`
	Description string       `json:"description"`
	Image       string       `json:"image,omitempty"`
	Country     string       `gorm:"size:100" json:"country"`
	Styles      []MusicStyle `gorm:"many2many:band_styles" json:"styles"`
	Albums      []Album      `json:"albums,omitempty"`
	Slug        string       `gorm:"size:200;index" json:"slug"`
	Views       int          `gorm:"not null;default:0" json:"views"`
}

func (b *Band) BeforeCreate(*gorm.DB) error {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Name)
	}
	return nil
}

type MusicLabel struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
}

type Album struct {
	ID              int         `gorm:"primaryKey" json:"id"`
	Name            string      `gorm:"size:200;not null;index" json:"name"`
	Description     string      `json:"description"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
	ReleaseDate     *time.Time  `gorm:"type:date" json:"release_date,omitempty"`
	BandID          int         `gorm:"not null" json:"band_id"`
	Band            *Band       `json:"band,omitempty"`
	LabelID         int         `gorm:"not null" json:"label_id"`
	Label           *MusicLabel `json:"label,omitempty"`
	Cover           string      `json:"cover,omitempty"`
	Slug            string      `gorm:"size:160;uniqueIndex" json:"slug"`
	Views           int         `gorm:"not null;default:0" json:"views"`
	Reviews         []Review    `json:"reviews,omitempty"`
}

// BeforeCreate derives the slug from the album and band names, so the
// band has to be resolvable at insert time.
func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.Slug != "" {
		return nil
	}
	bandName := ""
	if a.Band != nil {
		bandName = a.Band.Name
	} else if err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&Band{}).Where("id = ?", a.BandID).Pluck("name", &bandName).Error; err != nil {
		return err
	}
	a.Slug = slug.Make(a.Name + "-" + bandName)
	return nil
}

type Review struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	AlbumID   int       `gorm:"not null;index" json:"album_id"`
	ParentID  *int      `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Review   `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Text      string    `gorm:"size:5000;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Text     string `json:"text" binding:"required,max=5000"`
	ParentID *int   `json:"parent_id"`
}

type CreateBandRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Country     string   `json:"country" binding:"max=100"`
	Styles      []string `json:"styles"`
}

type CreateAlbumRequest struct {
	Name            string     `json:"name" binding:"required,max=200"`
	Description     string     `json:"description"`
	DurationSeconds int        `json:"duration_seconds" binding:"gte=0"`
	ReleaseDate     *time.Time `json:"release_date"`
	BandID          int        `json:"band_id" binding:"required"`
	LabelID         int        `json:"label_id" binding:"required"`
	Cover           string     `json:"cover"`
}
