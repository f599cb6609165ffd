// Package uploader binds an uploaded photo to durable storage and hands back
// its public address. Paths are never derived from user-supplied text - a
// fresh random token plus the original extension, scoped under the album.
package uploader

import (
	"bytes"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"server/config"
	"server/storage"
	"server/utils"

	"github.com/google/uuid"
)

var ErrEmptyFile = errors.New("select a photo to upload")

// BoundPhoto describes a successfully stored photo.
type BoundPhoto struct {
	Path      string // bucket-relative
	ThumbPath string // empty when the thumbnail could not be produced
	URL       string
	Size      int64
}

// ThumbPathFor maps a photo path to its thumbnail path. Thumbs are always
// JPEG.
func ThumbPathFor(photoPath string) string {
	ext := filepath.Ext(photoPath)
	return strings.TrimSuffix(photoPath, ext) + "_thumb.jpg"
}

// Bind validates the file, stores it under album/<id>/<uuid><ext> and
// generates a thumbnail next to it. Saving is non-overwriting: a path
// collision fails the whole operation rather than replacing content.
func Bind(store storage.StorageAPI, albumID uint64, file *multipart.FileHeader) (BoundPhoto, error) {
	if file == nil || file.Filename == "" || file.Size == 0 {
		return BoundPhoto{}, ErrEmptyFile
	}
	reader, err := file.Open()
	if err != nil {
		return BoundPhoto{}, err
	}
	defer reader.Close()
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, reader); err != nil {
		return BoundPhoto{}, err
	}
	if buf.Len() == 0 {
		return BoundPhoto{}, ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := "album/" + strconv.FormatUint(albumID, 10) + "/" + uuid.NewString() + ext
	size, err := store.Save(path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return BoundPhoto{}, err
	}

	bound := BoundPhoto{
		Path: path,
		URL:  store.PublicAddressOf(path),
		Size: size,
	}

	// Thumbnail is best effort - a photo that fails to decode still gets
	// stored and displayed full size
	var thumb bytes.Buffer
	if _, err := utils.CreateThumb(uint(config.THUMB_SIZE), bytes.NewReader(buf.Bytes()), &thumb); err == nil {
		thumbPath := ThumbPathFor(path)
		if _, err := store.Save(thumbPath, &thumb); err == nil {
			bound.ThumbPath = thumbPath
		} else {
			log.Printf("Cannot save thumb %s: %v", thumbPath, err)
		}
	}
	return bound, nil
}
