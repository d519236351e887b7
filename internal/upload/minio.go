package upload

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioProvider implements the Provider interface for MinIO/S3 storage.
// It is an alternative relay target selected at startup; there is no
// failover between providers within a request.
type MinioProvider struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioProvider creates a new MinioProvider
func NewMinioProvider() *MinioProvider {
	return &MinioProvider{}
}

// Name returns the provider name
func (m *MinioProvider) Name() string {
	return "minio"
}

// Configure sets up the MinIO client with the given configuration
func (m *MinioProvider) Configure(config map[string]any) error {
	endpoint, ok := StringValue(config, "endpoint")
	if !ok {
		return fmt.Errorf("minio: endpoint is required")
	}

	accessKey, ok := StringValue(config, "access_key")
	if !ok {
		return fmt.Errorf("minio: access_key is required")
	}

	secretKey, ok := StringValue(config, "secret_key")
	if !ok {
		return fmt.Errorf("minio: secret_key is required")
	}

	bucket, ok := StringValue(config, "bucket")
	if !ok {
		return fmt.Errorf("minio: bucket is required")
	}

	secure := BoolValue(config, "secure", true)
	region := StringValueDefault(config, "region", "us-east-1")
	prefix := StringValueDefault(config, "prefix", "")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return fmt.Errorf("minio: failed to create client: %w", err)
	}

	m.client = client
	m.bucket = bucket
	m.prefix = prefix

	// Check if bucket exists
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio: failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("minio: bucket %s does not exist", bucket)
	}

	return nil
}

// Ping reports whether the configured bucket is reachable.
func (m *MinioProvider) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("minio: provider not configured")
	}
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("minio: bucket %s does not exist", m.bucket)
	}
	return nil
}

// Upload streams the content to MinIO and normalizes the object info into
// a Result. The direct link points at the object URL; MinIO has no separate
// download page, so both link fields carry the same URL.
func (m *MinioProvider) Upload(ctx context.Context, reader io.Reader, filename string, size int64) (*Result, error) {
	if m.client == nil {
		return nil, fmt.Errorf("minio: provider not configured")
	}

	filename = SanitizeFilename(filename)
	if filename == "" {
		return Failure("Empty filename"), nil
	}
	if !AllowedFile(filename) {
		return Failure(AllowedTypesMessage()), nil
	}

	objectName := filename
	if m.prefix != "" {
		objectName = path.Join(m.prefix, filename)
	}

	info, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return Failuref("Upload error: %v", err), nil
	}

	link := m.client.EndpointURL().String() + "/" + path.Join(m.bucket, objectName)
	return &Result{
		Success:      true,
		DirectLink:   link,
		FileID:       info.ETag,
		FileName:     filename,
		Size:         info.Size,
		DownloadPage: link,
	}, nil
}
