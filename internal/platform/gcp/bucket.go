package gcp

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/envutil"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

// UploadResult is what the persistence layer records about a stored object.
// The service never re-reads the object; this metadata is the whole contract.
type UploadResult struct {
	URL       string
	SizeBytes int64
	Format    string
}

type BucketService interface {
	UploadMedia(ctx context.Context, key string, file io.Reader) (*UploadResult, error)
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
}

type bucketService struct {
	log        *logger.Logger
	client     *storage.Client
	bucketName string
	cdnDomain  string
}

func NewBucketService(baseLog *logger.Logger) (BucketService, error) {
	serviceLog := baseLog.With("service", "BucketService")
	bucket := envutil.String("GCS_BUCKET_NAME", "")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := envutil.String("CDN_DOMAIN", "")
	saPath := envutil.String("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	if saPath == "" {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ambient ADC")
	}

	ctx := context.Background()
	var client *storage.Client
	var err error
	if saPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &bucketService{
		log:        serviceLog,
		client:     client,
		bucketName: bucket,
		cdnDomain:  cdnDomain,
	}, nil
}

func (bs *bucketService) UploadMedia(ctx context.Context, key string, file io.Reader) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	w := bs.client.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		w.ContentType = ct
	}

	written, err := io.Copy(w, file)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to write object to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return &UploadResult{
		URL:       bs.PublicURL(key),
		SizeBytes: written,
		Format:    ext,
	}, nil
}

func (bs *bucketService) DeleteObject(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := bs.client.Bucket(bs.bucketName).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q: %w", key, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
