package models

import (
	"errors"
	"strings"

	"server/db"

	"gorm.io/gorm"
)

type Memory struct {
	ID      uint64 `gorm:"primaryKey"`
	AlbumID uint64 `gorm:"not null;index:memory_album_created,priority:1"`
	Album   Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// Unix seconds; sort key and the cache-busting token for the photo
	CreatedAt int64  `gorm:"index:memory_album_created,priority:2"`
	Title     string `gorm:"type:varchar(300);not null"`
	Place     string `gorm:"type:varchar(300)"`
	// Free text, exactly as the owner typed it (e.g. "16/12/2025 19:30")
	Time        string `gorm:"type:varchar(100)"`
	Description string `gorm:"type:text"`
	PhotoURL    string `gorm:"type:varchar(2000);not null"`
	// Bucket-relative path of the photo, kept for blob cleanup
	PhotoPath string `gorm:"type:varchar(500)"`
}

// MemoryCreate inserts a memory record. The photo must already be bound -
// upload happens first so a failure here leaves at most an unreferenced
// blob, never a record pointing at a missing photo.
func MemoryCreate(albumID uint64, title, place, when, description, photoURL, photoPath string) (Memory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Memory{}, ErrTitleRequired
	}
	if photoURL == "" {
		return Memory{}, ErrPhotoRequired
	}
	memory := Memory{
		AlbumID:     albumID,
		Title:       title,
		Place:       strings.TrimSpace(place),
		Time:        strings.TrimSpace(when),
		Description: strings.TrimSpace(description),
		PhotoURL:    photoURL,
		PhotoPath:   photoPath,
	}
	err := db.Instance.Create(&memory).Error
	if err != nil {
		return Memory{}, err
	}
	return memory, nil
}

// MemoriesByAlbum returns the album's memories, newest first. The owner's
// management view and the anonymous public view both use this - once an
// album is shared all memory fields are public.
func MemoriesByAlbum(albumID uint64) ([]Memory, error) {
	var memories []Memory
	err := db.Instance.
		Where("album_id = ?", albumID).
		Order("created_at DESC, id DESC").
		Find(&memories).Error
	return memories, err
}

// MemoryByIDForOwner loads a memory only if its album belongs to the owner.
func MemoryByIDForOwner(id, ownerID uint64) (Memory, error) {
	var memory Memory
	err := db.Instance.
		Joins("join albums on albums.id = memories.album_id").
		Where("memories.id = ? AND albums.user_id = ?", id, ownerID).
		First(&memory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Memory{}, ErrNotFound
	}
	return memory, err
}

func (m *Memory) Delete() error {
	result := db.Instance.Delete(&Memory{}, "id = ?", m.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
