// Package objstore brokers uploads to S3-compatible object storage.
// The server hands clients presigned URLs and never proxies file bytes.
package objstore

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrUploadsDisabled = errors.New("uploads are not configured")

// Upload describes a brokered upload: the client PUTs the file to
// UploadURL and the object becomes readable at PublicURL.
type Upload struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	ExpiresAt string `json:"expires_at"`
}

// Broker issues presigned upload URLs.
type Broker interface {
	PresignUpload(ctx context.Context, filename, contentType string) (*Upload, error)
}

// disabledBroker rejects every request. Used when no provider is configured.
type disabledBroker struct{}

func (disabledBroker) PresignUpload(context.Context, string, string) (*Upload, error) {
	return nil, ErrUploadsDisabled
}

// presignExpiry is how long an issued upload URL stays valid.
const presignExpiry = 15 * time.Minute
