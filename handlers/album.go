package handlers

import (
	"encoding/base64"
	"log"
	"net/http"

	"server/config"
	"server/db"
	"server/models"
	"server/share"
	"server/storage"
	"server/uploader"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	PublicURL   string `json:"public_url"`
	IsPublic    bool   `json:"is_public"`
	CreatedAt   int64  `json:"created_at"`
	MemoryCount int64  `json:"memory_count"`
}

type AlbumCreateRequest struct {
	Title string `form:"title" binding:"required"`
	Slug  string `form:"slug"`
}

type AlbumSaveRequest struct {
	AlbumID uint64  `form:"album_id" binding:"required"`
	Title   *string `form:"title"`
	Slug    *string `form:"slug"`
}

type AlbumIDRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
}

func albumInfoFrom(album *models.Album) AlbumInfo {
	return AlbumInfo{
		ID:        album.ID,
		Title:     album.Title,
		Slug:      album.Slug,
		PublicURL: share.PublicURL(config.PUBLIC_BASE_URL, album.Slug),
		IsPublic:  album.IsPublic,
		CreatedAt: album.CreatedAt,
	}
}

func AlbumList(c *gin.Context, user *models.User) {
	albums, err := models.AlbumsByOwner(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	counts := map[uint64]int64{}
	rows, err := db.Instance.
		Table("memories").
		Select("album_id, count(*)").
		Joins("join albums on albums.id = memories.album_id").
		Where("albums.user_id = ?", user.ID).
		Group("album_id").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var albumID uint64
		var count int64
		if err = rows.Scan(&albumID, &count); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		counts[albumID] = count
	}
	result := []AlbumInfo{}
	for i := range albums {
		info := albumInfoFrom(&albums[i])
		info.MemoryCount = counts[albums[i].ID]
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func AlbumCreate(c *gin.Context, user *models.User) {
	r := AlbumCreateRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.AlbumCreate(user.ID, r.Title, r.Slug)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, albumInfoFrom(&album))
}

func AlbumSave(c *gin.Context, user *models.User) {
	r := AlbumSaveRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.AlbumByIDForOwner(r.AlbumID, user.ID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if err = album.Update(r.Title, r.Slug); err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, albumInfoFrom(&album))
}

func AlbumDelete(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.AlbumByIDForOwner(r.AlbumID, user.ID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	// Collect photo paths before the rows go away
	memories, err := models.MemoriesByAlbum(album.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err = album.Delete(); err != nil {
		errorResponse(c, err)
		return
	}
	// Records are gone; blobs are cleaned up best effort. A failure here
	// only leaves unreferenced blobs behind
	store := storage.GetDefaultStorage()
	for i := range memories {
		deleteMemoryBlobs(store, &memories[i])
	}
	c.JSON(http.StatusOK, OKResponse)
}

func deleteMemoryBlobs(store storage.StorageAPI, memory *models.Memory) {
	if memory.PhotoPath == "" {
		return
	}
	if err := store.Delete(memory.PhotoPath); err != nil {
		log.Printf("Cannot delete photo %s: %v", memory.PhotoPath, err)
	}
	_ = store.Delete(uploader.ThumbPathFor(memory.PhotoPath))
}

// AlbumShare returns the public link, QR code and copy-paste text for an
// album. Everything is derived fresh from the album's current slug.
func AlbumShare(c *gin.Context, user *models.User) {
	r := AlbumIDRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.AlbumByIDForOwner(r.AlbumID, user.ID)
	if err != nil {
		errorResponse(c, err)
		return
	}
	artifact, err := share.Derive(config.PUBLIC_BASE_URL, album.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":       artifact.PublicURL,
		"qr_png":    base64.StdEncoding.EncodeToString(artifact.QRPayload),
		"copy_text": share.CopyText(artifact.PublicURL),
	})
}
