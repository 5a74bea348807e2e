package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/talentmatch/backend/config"
)

// CloudStorageClient archives uploaded spreadsheets to Google Cloud Storage
// before they are parsed, so every import batch keeps its source file.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient creates a new Cloud Storage client
func NewCloudStorageClient(ctx context.Context, cfg *config.Config) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: cfg.ImportBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// ArchiveSpreadsheet uploads the raw spreadsheet bytes under the import
// batch id and returns the object URL
func (c *CloudStorageClient) ArchiveSpreadsheet(ctx context.Context, batchID string, content []byte, filename string) (string, error) {
	ext := filepath.Ext(filename)
	objectName := fmt.Sprintf("imports/%s/%d%s", batchID, time.Now().Unix(), ext)

	bucket := c.client.Bucket(c.bucketName)
	obj := bucket.Object(objectName)

	wc := obj.NewWriter(ctx)
	wc.ContentType = spreadsheetContentType(ext)

	if _, err := wc.Write(content); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName)
	return url, nil
}

// GetSignedURL generates a signed URL for temporary access to an archived file
func (c *CloudStorageClient) GetSignedURL(ctx context.Context, objectName string, expiration time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiration),
	}

	url, err := c.client.Bucket(c.bucketName).SignedURL(objectName, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}

func spreadsheetContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
