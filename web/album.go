package web

import (
	"net/http"

	"server/handlers"
	"server/models"
	"server/utils"

	"github.com/gin-gonic/gin"
)

// AlbumView is the anonymous projection of a shared album: resolve the slug,
// then list its memories newest first. A slug that never existed, an album
// deleted after the link went out and a non-public album all land on the
// same not-found answer - a visitor cannot tell them apart.
func AlbumView(c *gin.Context) {
	album, err := models.AlbumByPublicSlug(c.Param("slug"))
	if err != nil {
		notFound(c)
		return
	}
	memories, err := models.MemoriesByAlbum(album.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	result := []handlers.MemoryInfo{}
	var createdMin, createdMax int64
	for i := range memories {
		result = append(result, handlers.MemoryInfoFrom(&memories[i]))
		if createdMin == 0 || memories[i].CreatedAt < createdMin {
			createdMin = memories[i].CreatedAt
		}
		if memories[i].CreatedAt > createdMax {
			createdMax = memories[i].CreatedAt
		}
	}
	json := gin.H{
		"title":    album.Title,
		"slug":     album.Slug,
		"subtitle": utils.GetDatesString(createdMin, createdMax),
		"memories": result,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, json)
		return
	}
	c.HTML(http.StatusOK, "album_view.tmpl", json)
}

func notFound(c *gin.Context) {
	if c.Query("format") == "json" {
		c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
		return
	}
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{})
}
