package handlers

import (
	"errors"
	"net/http"

	"server/models"
	"server/slug"
	"server/uploader"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
	// Not-found and not-public are deliberately the same answer
	NotFoundResponse = Response{"album not found or private"}
)

// errorResponse translates store/uploader errors into actionable responses.
// Validation problems and slug conflicts come back to the owner as inline
// messages; anything else is surfaced verbatim.
func errorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, NotFoundResponse)
	case errors.Is(err, models.ErrSlugTaken):
		c.JSON(http.StatusConflict, Response{err.Error()})
	case errors.Is(err, models.ErrTitleRequired),
		errors.Is(err, models.ErrPhotoRequired),
		errors.Is(err, slug.ErrEmpty),
		errors.Is(err, uploader.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, Response{err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
	}
}
