package handlers

import (
	"log"
	"net/http"
	"strings"

	"server/db"
	"server/models"
	"server/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

func hasWriteAccess(bucket *storage.Bucket) error {
	store := storage.NewStorage(bucket)
	// Random path - saves are non-overwriting
	testPath := "tmp/" + uuid.NewString()
	_, err := store.Save(testPath, strings.NewReader("some-content"))
	if err != nil {
		log.Printf("Cannot save to bucket: %+v", bucket)
		return err
	}
	if err = store.Delete(testPath); err != nil {
		log.Printf("Cannot delete from bucket: %+v", bucket)
		return err
	}
	return nil
}

func cleanupPath(in *storage.Bucket) {
	for strings.Contains(in.Path, "..") {
		in.Path = strings.ReplaceAll(in.Path, "..", "")
	}
	for strings.Contains(in.Path, "//") {
		in.Path = strings.ReplaceAll(in.Path, "//", "/")
	}
}

// BucketSaveRequest carries the S3 secret on the way in. The Bucket struct
// itself never serializes it, so list/save responses cannot leak it.
type BucketSaveRequest struct {
	storage.Bucket
	S3Secret string `json:"s3secret"`
}

func BucketSave(c *gin.Context, user *models.User) {
	r := BucketSaveRequest{}
	err := c.ShouldBindWith(&r, binding.JSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	bucket := r.Bucket
	bucket.S3Secret = r.S3Secret
	cleanupPath(&bucket)

	// List responses omit the secret, so an edit round-trip arrives without
	// one - keep the stored secret unless a new one is provided
	if bucket.ID != 0 && bucket.S3Secret == "" {
		var existing storage.Bucket
		if err := db.Instance.First(&existing, bucket.ID).Error; err == nil {
			bucket.S3Secret = existing.S3Secret
		}
	}

	if bucket.Name == "" {
		c.JSON(http.StatusBadRequest, Response{"Empty bucket name"})
		return
	}
	if bucket.StorageType == storage.StorageTypeFile {
		if bucket.Path == "" {
			c.JSON(http.StatusBadRequest, Response{"Empty bucket path"})
			return
		}
		if bucket.Path[0] != '/' {
			c.JSON(http.StatusBadRequest, Response{"Path must be absolute and start with / (slash)"})
			return
		}
	} else if bucket.StorageType == storage.StorageTypeS3 {
		if bucket.S3Key == "" || bucket.S3Secret == "" {
			c.JSON(http.StatusBadRequest, Response{"'S3 Key' and 'S3 Secret' must be provided"})
			return
		}
		if bucket.Region == "" {
			bucket.Region = "us-east-1"
		}
	} else {
		c.JSON(http.StatusBadRequest, Response{"'type' must be one of 'file' or 's3'"})
		return
	}
	if err := hasWriteAccess(&bucket); err != nil {
		c.JSON(http.StatusForbidden, Response{"No write access to bucket: " + err.Error()})
		return
	}
	if err = bucket.TryInit(); err != nil {
		c.JSON(http.StatusForbidden, Response{err.Error()})
		return
	}
	if bucket.ID == 0 {
		err = db.Instance.Create(&bucket).Error
	} else {
		err = db.Instance.Save(&bucket).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	// Re-initialize storage
	storage.Init()
	c.JSON(http.StatusOK, OKResponse)
}

func BucketList(c *gin.Context, user *models.User) {
	buckets := []storage.Bucket{}
	result := db.Instance.Find(&buckets)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, buckets)
}
