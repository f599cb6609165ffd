package uploader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"server/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.StorageAPI {
	bucket := storage.Bucket{
		ID:          1,
		Name:        "test",
		StorageType: storage.StorageTypeFile,
		Path:        t.TempDir(),
	}
	return storage.NewDiskStorage(&bucket)
}

// fileHeader builds a real multipart.FileHeader the way gin receives one.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["photo"][0]
}

func testPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBindStoresPhotoAndThumb(t *testing.T) {
	store := newTestStore(t)
	content := testPNG(t)

	bound, err := Bind(store, 42, fileHeader(t, "Sunset.PNG", content))
	require.NoError(t, err)

	// random token under the album, original extension lowercased
	assert.Regexp(t, regexp.MustCompile(`^album/42/[0-9a-f-]{36}\.png$`), bound.Path)
	assert.Equal(t, int64(len(content)), bound.Size)
	assert.True(t, strings.HasSuffix(bound.URL, "/photos/"+bound.Path))

	var out bytes.Buffer
	_, err = store.Load(bound.Path, &out)
	require.NoError(t, err)
	assert.Equal(t, content, out.Bytes())

	require.Equal(t, ThumbPathFor(bound.Path), bound.ThumbPath)
	var thumb bytes.Buffer
	_, err = store.Load(bound.ThumbPath, &thumb)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(thumb.Bytes(), []byte("\xff\xd8")), "thumb must be JPEG")
}

func TestBindRejectsEmptyFile(t *testing.T) {
	store := newTestStore(t)

	_, err := Bind(store, 1, nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Bind(store, 1, fileHeader(t, "empty.jpg", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

// A file that is not an image is still stored, just without a thumbnail.
func TestBindKeepsUndecodablePhoto(t *testing.T) {
	store := newTestStore(t)

	bound, err := Bind(store, 1, fileHeader(t, "not-an-image.jpg", []byte("plain text")))
	require.NoError(t, err)
	assert.Empty(t, bound.ThumbPath)

	var out bytes.Buffer
	_, err = store.Load(bound.Path, &out)
	require.NoError(t, err)
	assert.Equal(t, "plain text", out.String())
}

func TestThumbPathFor(t *testing.T) {
	assert.Equal(t, "album/1/abc_thumb.jpg", ThumbPathFor("album/1/abc.png"))
	assert.Equal(t, "album/1/abc_thumb.jpg", ThumbPathFor("album/1/abc.jpg"))
	assert.Equal(t, "album/1/abc_thumb.jpg", ThumbPathFor("album/1/abc"))
}
