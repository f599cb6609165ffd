package storage

import (
	"io"
	"net/http"
	"os"
	"strings"

	"server/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	bucket   Bucket
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		bucket:   *bucket,
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) GetBucket() *Bucket {
	return &s.bucket
}

// getTmpPath returns a local scratch path in case of S3
func (s *S3Storage) getTmpPath(path string) string {
	return config.TMP_DIR + "/" + strings.ReplaceAll(path, "/", "_")
}

func (s *S3Storage) exists(path string) (bool, error) {
	_, err := s.s3Client.HeadObject(&s3.HeadObjectInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
	})
	if err == nil {
		return true, nil
	}
	if reqErr, ok := err.(awserr.RequestFailure); ok && reqErr.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	return false, err
}

// Save uploads a new object. S3 has no native no-clobber put on this API
// version, so a HeadObject check guards the path first; random object names
// make the remaining window irrelevant in practice.
func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	taken, err := s.exists(path)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrAlreadyExists
	}
	counter := &countingReader{reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	input := s3manager.UploadInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
		Body:   counter,
	}
	if s.bucket.SSEEncryption != "" {
		input.ServerSideEncryption = &s.bucket.SSEEncryption
	}
	if _, err := uploader.Upload(&input); err != nil {
		return 0, err
	}
	return counter.total, nil
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

// Serve proxies through a local temp copy. Public photo traffic normally
// goes straight to the bucket address, not through here.
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	tmp := s.getTmpPath(path)
	if _, err := os.Stat(tmp); err != nil {
		out, err := os.Create(tmp)
		if err != nil {
			http.Error(writer, "storage error", http.StatusInternalServerError)
			return
		}
		_, err = s.Load(path, out)
		out.Close()
		if err != nil {
			os.Remove(tmp)
			http.Error(writer, "storage error", http.StatusInternalServerError)
			return
		}
	}
	http.ServeFile(writer, request, tmp)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket.Name,
		Key:    aws.String(s.bucket.GetRemotePath(path)),
	})
	return err
}

func (s *S3Storage) PublicAddressOf(path string) string {
	return s.bucket.PublicAddressOf(path)
}

func (s *S3Storage) GetTotalSpace() uint64 {
	return 0 // not meaningful for S3
}

func (s *S3Storage) GetFreeSpace() uint64 {
	return 0
}

type countingReader struct {
	reader io.Reader
	total  int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.total += int64(n)
	return n, err
}
