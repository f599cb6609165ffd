package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Photo paths are never reused for new content - a replaced photo gets a
// fresh random path - so photo responses can be cached for a long time.
// Everything else is API or view state and must not be cached.
const photoCacheSeconds = 30 * 86400

func NoCacheHeaders(c *gin.Context) {
	c.Header("cache-control", "no-cache")
}

func PhotoCacheHeaders(c *gin.Context) {
	c.Header("cache-control", "private, max-age="+strconv.Itoa(photoCacheSeconds))
}
