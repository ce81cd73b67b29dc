package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

func (r *Repository) Albums(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	if err := r.db.WithContext(ctx).Preload("Band").Order("id").Find(&albums).Error; err != nil {
		return nil, translate("list albums", err)
	}
	return albums, nil
}

func (r *Repository) AlbumBySlug(ctx context.Context, albumSlug string) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).
		Preload("Band").Preload("Label").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Reviews.User").
		Where("slug = ?", albumSlug).
		Take(&album).Error
	if err != nil {
		return nil, translate("album "+albumSlug, err)
	}
	return &album, nil
}

// BandBySlug returns the first band with the slug. Band slugs are not unique.
func (r *Repository) BandBySlug(ctx context.Context, bandSlug string) (*models.Band, error) {
	var band models.Band
	err := r.db.WithContext(ctx).
		Preload("Styles").
		Preload("Albums", func(db *gorm.DB) *gorm.DB { return db.Order("release_date DESC NULLS LAST, id") }).
		Where("slug = ?", bandSlug).
		Order("id").
		First(&band).Error
	if err != nil {
		return nil, translate("band "+bandSlug, err)
	}
	return &band, nil
}

// AddReview stores a user's review of the album. Replies must target a review
// of the same album.
func (r *Repository) AddReview(ctx context.Context, albumSlug string, review *models.Review) error {
	db := r.db.WithContext(ctx)

	var album models.Album
	if err := db.Select("id").Where("slug = ?", albumSlug).Take(&album).Error; err != nil {
		return translate("album "+albumSlug, err)
	}
	review.AlbumID = album.ID

	if review.ParentID != nil {
		var n int64
		if err := db.Model(&models.Review{}).
			Where("id = ? AND album_id = ?", *review.ParentID, album.ID).
			Count(&n).Error; err != nil {
			return translate("parent review", err)
		}
		if n == 0 {
			return ErrInvalidParent
		}
	}

	return translate("create review", db.Create(review).Error)
}

func (r *Repository) CreateStyle(ctx context.Context, style *models.MusicStyle) error {
	return translate("create style", r.db.WithContext(ctx).Create(style).Error)
}

func (r *Repository) CreateLabel(ctx context.Context, label *models.MusicLabel) error {
	return translate("create label", r.db.WithContext(ctx).Create(label).Error)
}

// CreateBand stores the band and links it to existing styles.
func (r *Repository) CreateBand(ctx context.Context, band *models.Band, styleSlugs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(styleSlugs) > 0 {
			var styles []models.MusicStyle
			if err := tx.Where("slug IN ?", styleSlugs).Find(&styles).Error; err != nil {
				return translate("load styles", err)
			}
			if len(styles) != len(unique(styleSlugs)) {
				return translate("styles", gorm.ErrRecordNotFound)
			}
			band.Styles = styles
		}
		return translate("create band", tx.Omit("Styles.*").Create(band).Error)
	})
}

// CreateAlbum stores the album once its band and label are known to exist.
func (r *Repository) CreateAlbum(ctx context.Context, album *models.Album) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var band models.Band
		if err := tx.Take(&band, album.BandID).Error; err != nil {
			return translate("band", err)
		}
		var label models.MusicLabel
		if err := tx.Take(&label, album.LabelID).Error; err != nil {
			return translate("label", err)
		}
		if err := tx.Create(album).Error; err != nil {
			return translate("create album", err)
		}
		album.Band, album.Label = &band, &label
		return nil
	})
}
