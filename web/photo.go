package web

import (
	"net/http"
	"strings"

	"server/storage"

	"github.com/gin-gonic/gin"
)

// PhotoView serves photo blobs for disk buckets. Photo URLs are public once
// an album is shared, so there is no auth here - only a traversal guard.
// Paths are server-generated (album/<id>/<uuid>.<ext>), never user text.
func PhotoView(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		c.String(http.StatusBadRequest, "bad path")
		return
	}
	storage.GetDefaultStorage().Serve(path, c.Request, c.Writer)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
