package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"personalblog/internal/config"
)

type Storage interface {
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	// ObjectName maps a public URL back to its object, reporting false for
	// URLs this storage did not issue.
	ObjectName(imageURL string) (string, bool)
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

// NewMinIOClient connects to MinIO and creates the bucket when missing.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
		log.Printf("Created bucket %s", cfg.BucketName)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

func objectPath(fileName string, now time.Time, id string) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	return fmt.Sprintf("covers/%d/%02d/%s%s", now.Year(), now.Month(), id, fileExt)
}

func contentType(objectName string) string {
	ct := mime.TypeByExtension(filepath.Ext(objectName))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

func (m *MinIOClient) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.cfg.PublicURL, m.cfg.BucketName, objectName)
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	now := time.Now().UTC()
	objectName := objectPath(fileName, now, uuid.New().String())

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType(objectName),
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	return m.publicURL(objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", objectName, err)
	}
	return nil
}

func (m *MinIOClient) ObjectName(imageURL string) (string, bool) {
	prefix := m.publicURL("")
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}

	name := strings.TrimPrefix(imageURL, prefix)
	if name == "" {
		return "", false
	}
	return name, true
}
