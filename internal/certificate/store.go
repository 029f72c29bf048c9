package certificate

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const ContentTypePDF = "application/pdf"

// ObjectName is where the certificate of an enrollment is stored.
func ObjectName(enrollmentID string) string {
	return "certificates/" + enrollmentID + ".pdf"
}

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	Put(ctx context.Context, object, contentType string, data []byte) error
}

// GCSStore writes objects to a Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

func NewGCSStore(ctx context.Context, bucket string, opts []option.ClientOption, logger ...*zap.Logger) (*GCSStore, error) {
	l := zap.L().Named("certificate.gcs")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.gcs")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, logger: l}, nil
}

// ClientOptions builds the storage options for a service account key file.
// An empty path falls back to application default credentials.
func ClientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func (s *GCSStore) Put(ctx context.Context, object, contentType string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	// Certificates are small; a single request upload avoids a resumable session.
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", s.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close gs://%s/%s: %w", s.bucket, object, err)
	}
	s.logger.Info("certificate stored", zap.String("bucket", s.bucket), zap.String("object", object), zap.Int("bytes", len(data)))
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// NopStore discards objects. It is used when no bucket is configured.
type NopStore struct {
	logger *zap.Logger
}

func NewNopStore(logger ...*zap.Logger) *NopStore {
	l := zap.L().Named("certificate.nop")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.nop")
	}
	return &NopStore{logger: l}
}

func (s *NopStore) Put(_ context.Context, object, _ string, data []byte) error {
	s.logger.Debug("certificate storage disabled, object dropped", zap.String("object", object), zap.Int("bytes", len(data)))
	return nil
}
