package objstore

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Settings are the provider settings for an S3-compatible backend.
type S3Settings struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	PublicURL string `mapstructure:"public_url"` // base URL for reads, e.g. CDN front
}

// S3Broker issues presigned PUT URLs against an S3-compatible endpoint.
type S3Broker struct {
	client   *minio.Client
	bucket   string
	public   string
	scheme   string
	endpoint string
}

var _ Broker = (*S3Broker)(nil)

// NewS3Broker creates a broker from provider settings.
func NewS3Broker(settings S3Settings) (*S3Broker, error) {
	if settings.Endpoint == "" || settings.Bucket == "" {
		return nil, errors.New("s3 storage requires endpoint and bucket")
	}

	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create s3 client")
	}

	scheme := "http"
	if settings.UseSSL {
		scheme = "https"
	}

	return &S3Broker{
		client:   client,
		bucket:   settings.Bucket,
		public:   settings.PublicURL,
		scheme:   scheme,
		endpoint: settings.Endpoint,
	}, nil
}

// PresignUpload issues a presigned PUT URL for a new object. The object
// key is prefixed with a uuid so concurrent uploads of the same filename
// never collide.
func (b *S3Broker) PresignUpload(ctx context.Context, filename, contentType string) (*Upload, error) {
	if filename == "" {
		return nil, errors.New("filename is required")
	}

	key := path.Join("uploads", uuid.New().String(), path.Base(filename))

	uploadURL, err := b.client.PresignedPutObject(ctx, b.bucket, key, presignExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to presign upload")
	}

	return &Upload{
		ObjectKey: key,
		UploadURL: uploadURL.String(),
		PublicURL: b.publicURL(key),
		ExpiresAt: time.Now().Add(presignExpiry).UTC().Format(time.RFC3339),
	}, nil
}

// publicURL returns the read URL for an object key.
func (b *S3Broker) publicURL(key string) string {
	if b.public != "" {
		u, err := url.JoinPath(b.public, key)
		if err == nil {
			return u
		}
	}
	return fmt.Sprintf("%s://%s/%s/%s", b.scheme, b.endpoint, b.bucket, key)
}
