package models

import (
	"errors"
	"strings"

	"server/db"
	"server/slug"

	"gorm.io/gorm"
)

type Album struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"not null;index:user_album_created,priority:1"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// Unix seconds; also the default display order key (descending)
	CreatedAt int64 `gorm:"index:user_album_created,priority:2"`
	UpdatedAt int64
	Title     string `gorm:"type:varchar(300);not null"`
	// The unique index is the authority on slug uniqueness - the pre-checks
	// in create/update are a fast path only
	Slug     string `gorm:"type:varchar(300);not null;index:uniq_slug,unique"`
	IsPublic bool   `gorm:"not null"`
}

// AlbumCreate validates the title, derives the slug from the seed (or the
// title when no seed is given) and inserts the album. A slug already held by
// any other album fails with ErrSlugTaken - never auto-suffixed, the owner
// picks a new one.
func AlbumCreate(ownerID uint64, title, slugSeed string) (Album, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Album{}, ErrTitleRequired
	}
	seed := strings.TrimSpace(slugSeed)
	if seed == "" {
		seed = title
	}
	s, err := slug.Normalize(seed)
	if err != nil {
		return Album{}, err
	}
	// Fast path only - two concurrent creates can both pass this, the
	// unique index catches the second writer below
	if slugInUse(s, 0) {
		return Album{}, ErrSlugTaken
	}
	album := Album{
		UserID:   ownerID,
		Title:    title,
		Slug:     s,
		IsPublic: true,
	}
	if err := db.Instance.Create(&album).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Album{}, ErrSlugTaken
		}
		return Album{}, err
	}
	return album, nil
}

// AlbumsByOwner returns the owner's albums, newest first.
func AlbumsByOwner(ownerID uint64) ([]Album, error) {
	var albums []Album
	err := db.Instance.
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&albums).Error
	return albums, err
}

// AlbumByIDForOwner loads an album only if it belongs to the given owner.
func AlbumByIDForOwner(id, ownerID uint64) (Album, error) {
	var album Album
	err := db.Instance.First(&album, "id = ? AND user_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Album{}, ErrNotFound
	}
	return album, err
}

// AlbumByPublicSlug resolves a slug for an anonymous visitor. A slug that
// does not exist and an album that is not public produce the same ErrNotFound
// on purpose - the caller cannot tell the two apart.
func AlbumByPublicSlug(s string) (Album, error) {
	var album Album
	err := db.Instance.First(&album, "slug = ? AND is_public = ?", s, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Album{}, ErrNotFound
	}
	return album, err
}

// Update applies a partial update. Nil means "leave unchanged". A new slug
// seed goes through the exact same normalization and uniqueness rule as in
// AlbumCreate.
func (a *Album) Update(title, slugSeed *string) error {
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return ErrTitleRequired
		}
		a.Title = t
	}
	if slugSeed != nil {
		s, err := slug.Normalize(*slugSeed)
		if err != nil {
			return err
		}
		if slugInUse(s, a.ID) {
			return ErrSlugTaken
		}
		a.Slug = s
	}
	err := db.Instance.Model(a).Select("title", "slug").Updates(map[string]interface{}{
		"title": a.Title,
		"slug":  a.Slug,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	return err
}

func slugInUse(s string, excludeID uint64) bool {
	var count int64
	db.Instance.Model(&Album{}).
		Where("slug = ? AND id <> ?", s, excludeID).
		Count(&count)
	return count > 0
}

// Delete removes the album and all its memories. Memories go first so that
// the only window a concurrent reader could ever observe is "album still
// resolves with fewer memories" - never memories with a dangling album.
func (a *Album) Delete() error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Memory{}, "album_id = ?", a.ID).Error; err != nil {
			return err
		}
		result := tx.Delete(&Album{}, "id = ?", a.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
