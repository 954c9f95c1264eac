package uploads

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"printstudio/internal/config"
)

// MinIOSink stores uploads as objects in a single bucket.
type MinIOSink struct {
	client *minio.Client
	bucket string
}

// NewMinIOSink creates the client and ensures the bucket exists.
func NewMinIOSink(cfg config.UploadsConfig) (*MinIOSink, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOSink{client: mc, bucket: cfg.Bucket}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

func (s *MinIOSink) Store(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *MinIOSink) Open(ctx context.Context, name string) (io.ReadCloser, *File, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, err
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return obj, &File{Name: name, Size: info.Size, ContentType: info.ContentType}, nil
}

func (s *MinIOSink) List(ctx context.Context) ([]File, error) {
	files := []File{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		files = append(files, File{Name: obj.Key, Size: obj.Size, ContentType: obj.ContentType})
	}
	return files, nil
}
