package rendering

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/invoicehub/backend/internal/application/billing"
	infraconfig "github.com/invoicehub/backend/internal/infrastructure/config"
)

var _ appbilling.ArtifactStore = (*S3ArtifactStore)(nil)

// S3ArtifactStore persists rendered invoice PDFs in an S3-compatible
// bucket. Objects are keyed per tenant and invoice number so a re-render
// overwrites the previous artifact.
type S3ArtifactStore struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3ArtifactStoreOption is a functional option for configuring S3ArtifactStore
type S3ArtifactStoreOption func(*S3ArtifactStore)

// WithArtifactLogger sets a custom logger
func WithArtifactLogger(logger *zap.Logger) S3ArtifactStoreOption {
	return func(s *S3ArtifactStore) {
		s.logger = logger
	}
}

// NewS3ArtifactStore creates an artifact store from configuration. It works
// with any S3-compatible backend (AWS S3, MinIO, RustFS, etc.)
func NewS3ArtifactStore(cfg *infraconfig.StorageConfig, opts ...S3ArtifactStoreOption) (*S3ArtifactStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint))
		}
	})

	store := &S3ArtifactStore{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Call during startup.
func (s *S3ArtifactStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating artifact bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have created it concurrently
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// StorePDF uploads a rendered PDF and returns its object key
func (s *S3ArtifactStore) StorePDF(ctx context.Context, tenantID uuid.UUID, invoiceNumber string, pdf []byte) (string, error) {
	if len(pdf) == 0 {
		return "", NewRenderError(ErrCodeStorageFailed, "PDF payload is empty", nil)
	}

	key := ArtifactKey(tenantID, invoiceNumber)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		s.logger.Error("artifact upload failed",
			zap.String("key", key),
			zap.Error(err))
		return "", NewRenderError(ErrCodeStorageFailed, "Failed to store invoice PDF", err)
	}

	s.logger.Info("invoice PDF stored",
		zap.String("key", key),
		zap.Int("bytes", len(pdf)))
	return key, nil
}

// ArtifactKey builds the object key for an invoice PDF. Invoice numbers
// may contain separators like "/" in custom prefixes; those are flattened
// so the key stays a single path segment per part.
func ArtifactKey(tenantID uuid.UUID, invoiceNumber string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(invoiceNumber)
	return fmt.Sprintf("tenants/%s/invoices/%s.pdf", tenantID, safe)
}

func normalizeEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}

// NoopArtifactStore is used when object storage is disabled. Store calls
// succeed and return an empty location so the send flow is unaffected.
type NoopArtifactStore struct{}

// StorePDF discards the PDF
func (NoopArtifactStore) StorePDF(_ context.Context, _ uuid.UUID, _ string, _ []byte) (string, error) {
	return "", nil
}

var _ appbilling.ArtifactStore = NoopArtifactStore{}
