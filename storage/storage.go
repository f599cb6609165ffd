package storage

import (
	"errors"
	"io"
	"log"
	"net/http"

	"server/config"
	"server/db"
)

// ErrAlreadyExists is returned by Save when the target path is taken.
// Writes never replace existing content - callers generate a new path.
var ErrAlreadyExists = errors.New("path already exists in storage")

type StorageAPI interface {
	GetBucket() *Bucket
	// Save writes a new blob; fails with ErrAlreadyExists on a taken path
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	// PublicAddressOf is the stable fetchable URL for a saved blob
	PublicAddressOf(path string) string
	GetTotalSpace() uint64
	GetFreeSpace() uint64
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	ensureDefaultBucket()

	cachedStorage = []StorageAPI{}
	var buckets []Bucket
	err := db.Instance.Find(&buckets).Error
	if err != nil {
		panic(err)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	for _, bucket := range buckets {
		cachedStorage = append(cachedStorage, NewStorage(&bucket))
	}
}

func NewStorage(bucket *Bucket) StorageAPI {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(bucket)
	case StorageTypeS3:
		return NewS3Storage(bucket)
	}
	panic("storage type unavailable")
}

// ensureDefaultBucket creates the initial disk bucket on an empty install.
func ensureDefaultBucket() {
	if config.DEFAULT_BUCKET_DIR == "" {
		return
	}
	var count int64
	if err := db.Instance.Model(&Bucket{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	bucket := Bucket{
		Name:        "default",
		StorageType: StorageTypeFile,
		Path:        config.DEFAULT_BUCKET_DIR,
	}
	if err := bucket.TryInit(); err != nil {
		log.Printf("Cannot init default bucket: %v", err)
		return
	}
	if err := db.Instance.Create(&bucket).Error; err != nil {
		log.Printf("Cannot create default bucket: %v", err)
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		panic("no storage available")
	}
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	return cachedStorage[0]
}
