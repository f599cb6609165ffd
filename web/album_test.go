package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/config"
	"server/db"
	"server/models"
	"server/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db.Init("", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, db.Instance.AutoMigrate(&models.User{}, &models.Album{}, &models.Memory{}))
	config.DEFAULT_BUCKET_DIR = t.TempDir()
	storage.Init()

	router := gin.New()
	router.LoadHTMLGlob("../templates/*.tmpl")
	router.GET("/w/album/:slug", AlbumView)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestAlbumViewJSON(t *testing.T) {
	router := newTestRouter(t)

	album, err := models.AlbumCreate(1, "Praia do Rosa", "")
	require.NoError(t, err)
	older := models.Memory{AlbumID: album.ID, Title: "Chegada", PhotoURL: "https://blobs/1.jpg", CreatedAt: 1700000000}
	require.NoError(t, db.Instance.Create(&older).Error)
	newer := models.Memory{AlbumID: album.ID, Title: "Por do sol", PhotoURL: "https://blobs/2.jpg", CreatedAt: 1700300000}
	require.NoError(t, db.Instance.Create(&newer).Error)

	w := get(router, "/w/album/praia-do-rosa?format=json")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Title    string `json:"title"`
		Slug     string `json:"slug"`
		Subtitle string `json:"subtitle"`
		Memories []struct {
			Title    string `json:"title"`
			PhotoURL string `json:"photo_url"`
		} `json:"memories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Praia do Rosa", body.Title)
	assert.Equal(t, "praia-do-rosa", body.Slug)
	assert.NotEmpty(t, body.Subtitle)
	require.Len(t, body.Memories, 2)
	assert.Equal(t, "Por do sol", body.Memories[0].Title)
	assert.Equal(t, "Chegada", body.Memories[1].Title)
}

func TestAlbumViewHTML(t *testing.T) {
	router := newTestRouter(t)

	album, err := models.AlbumCreate(1, "Praia do Rosa", "")
	require.NoError(t, err)
	memory := models.Memory{AlbumID: album.ID, Title: "Por do sol", PhotoURL: "https://blobs/2.jpg", CreatedAt: 1700300000}
	require.NoError(t, db.Instance.Create(&memory).Error)

	w := get(router, "/w/album/praia-do-rosa")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Praia do Rosa")
	assert.Contains(t, w.Body.String(), "https://blobs/2.jpg")
}

func TestAlbumViewEmptyAlbum(t *testing.T) {
	router := newTestRouter(t)

	_, err := models.AlbumCreate(1, "Vazio", "")
	require.NoError(t, err)

	w := get(router, "/w/album/vazio?format=json")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "", body["subtitle"])
	assert.Empty(t, body["memories"])
}

// A link that never existed, a private album and a deleted album are all the
// same answer to a visitor.
func TestAlbumViewNotFoundIsUniform(t *testing.T) {
	router := newTestRouter(t)

	album, err := models.AlbumCreate(1, "Praia", "")
	require.NoError(t, err)
	private, err := models.AlbumCreate(1, "Secreto", "")
	require.NoError(t, err)
	require.NoError(t, db.Instance.Model(&models.Album{}).Where("id = ?", private.ID).Update("is_public", false).Error)
	require.NoError(t, album.Delete())

	missing := get(router, "/w/album/nunca-existiu?format=json")
	deleted := get(router, "/w/album/praia?format=json")
	hidden := get(router, "/w/album/secreto?format=json")

	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, missing.Code, deleted.Code)
	assert.Equal(t, missing.Code, hidden.Code)
	assert.Equal(t, missing.Body.String(), deleted.Body.String())
	assert.Equal(t, missing.Body.String(), hidden.Body.String())

	htmlMissing := get(router, "/w/album/nunca-existiu")
	assert.Equal(t, http.StatusNotFound, htmlMissing.Code)
	assert.Contains(t, htmlMissing.Header().Get("Content-Type"), "text/html")
}
