package handlers

import (
	"net/http"

	"server/models"
	"server/storage"
	"server/uploader"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MemoryInfo struct {
	ID          uint64 `json:"id"`
	AlbumID     uint64 `json:"album_id"`
	Title       string `json:"title"`
	Place       string `json:"place"`
	Time        string `json:"time"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	ThumbURL    string `json:"thumb_url"`
	// Doubles as the cache-busting token when redisplaying the photo
	CreatedAt int64 `json:"created_at"`
}

type MemoryIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

func MemoryInfoFrom(m *models.Memory) MemoryInfo {
	info := MemoryInfo{
		ID:          m.ID,
		AlbumID:     m.AlbumID,
		Title:       m.Title,
		Place:       m.Place,
		Time:        m.Time,
		Description: m.Description,
		PhotoURL:    m.PhotoURL,
		CreatedAt:   m.CreatedAt,
	}
	if m.PhotoPath != "" {
		info.ThumbURL = storage.GetDefaultStorage().PublicAddressOf(uploader.ThumbPathFor(m.PhotoPath))
	}
	return info
}

func MemoryList(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if _, err = models.AlbumByIDForOwner(r.AlbumID, user.ID); err != nil {
		errorResponse(c, err)
		return
	}
	memories, err := models.MemoriesByAlbum(r.AlbumID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []MemoryInfo{}
	for i := range memories {
		result = append(result, MemoryInfoFrom(&memories[i]))
	}
	c.JSON(http.StatusOK, result)
}

// MemoryCreate uploads the photo first and inserts the record after, so a
// failure can only ever leave an unreferenced blob - never a record pointing
// at a photo that was not stored.
func MemoryCreate(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.AlbumByIDForOwner(r.AlbumID, user.ID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	title := c.PostForm("title")
	place := c.PostForm("place")
	when := c.PostForm("time")
	description := c.PostForm("description")
	if title == "" {
		errorResponse(c, models.ErrTitleRequired)
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		errorResponse(c, uploader.ErrEmptyFile)
		return
	}

	store := storage.GetDefaultStorage()
	bound, err := uploader.Bind(store, album.ID, file)
	if err != nil {
		errorResponse(c, err)
		return
	}
	memory, err := models.MemoryCreate(album.ID, title, place, when, description, bound.URL, bound.Path)
	if err != nil {
		// The blob is already up; drop it best effort so the failed insert
		// leaves nothing behind at all
		if delErr := store.Delete(bound.Path); delErr == nil && bound.ThumbPath != "" {
			_ = store.Delete(bound.ThumbPath)
		}
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, MemoryInfoFrom(&memory))
}

func MemoryDelete(c *gin.Context, user *models.User) {
	r := MemoryIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	memory, err := models.MemoryByIDForOwner(r.ID, user.ID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if err = memory.Delete(); err != nil {
		errorResponse(c, err)
		return
	}
	// Row first, blob second - worst case is an unreferenced blob
	deleteMemoryBlobs(storage.GetDefaultStorage(), &memory)
	c.JSON(http.StatusOK, OKResponse)
}
