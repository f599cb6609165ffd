package storage

import (
	"os"
	"strings"

	"server/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64      `gorm:"primaryKey" json:"id"`
	CreatedAt   int64       `json:"-"`
	UpdatedAt   int64       `json:"-"`
	Name        string      `gorm:"type:varchar(200)" json:"name"` // Display name, or the S3 bucket name
	StorageType StorageType `json:"type"`
	// Path on a drive or a prefix in a S3 bucket
	Path  string `gorm:"type:varchar(300)" json:"path"`
	S3Key string `gorm:"type:varchar(200)" json:"s3key"`
	// Never serialized back out - accepted only through BucketSaveRequest
	S3Secret string `gorm:"type:varchar(200)" json:"-"`
	Region   string `gorm:"type:varchar(20)" json:"region"`
	Endpoint string `gorm:"type:varchar(300)" json:"endpoint"` // For S3-compatible providers
	// Public base for photos in this bucket, e.g. a CDN in front of the S3
	// bucket. Empty means: disk buckets are served by this server, S3 buckets
	// addressed directly
	PublicHost    string `gorm:"type:varchar(300)" json:"public_host"`
	SSEEncryption string `gorm:"type:varchar(50)" json:"sse_encryption"`
}

// TryInit pre-creates the location on disk for file buckets.
func (b *Bucket) TryInit() error {
	if b.StorageType != StorageTypeFile {
		return nil
	}
	return os.MkdirAll(b.Path, 0777)
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	conf := aws.Config{
		Credentials: credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""),
		Region:      aws.String(b.Region),
	}
	if b.Endpoint != "" {
		conf.Endpoint = aws.String(b.Endpoint)
		conf.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(&conf))
	return s3.New(sess)
}

// PublicAddressOf returns the stable, publicly fetchable URL for a blob.
// This is what gets stored as a memory's photo_url.
func (b *Bucket) PublicAddressOf(path string) string {
	if b.PublicHost != "" {
		return strings.TrimSuffix(b.PublicHost, "/") + "/" + path
	}
	if b.StorageType == StorageTypeS3 {
		return "https://" + b.Name + ".s3." + b.Region + ".amazonaws.com/" + b.GetRemotePath(path)
	}
	return config.SERVER_URL + "/photos/" + path
}
