package objstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEUB66/sofartist-lounge/internal/infra/config"
)

func TestNewFromConfig_None(t *testing.T) {
	broker, err := NewFromConfig(config.StorageConfig{Provider: "none"})
	require.NoError(t, err)

	_, err = broker.PresignUpload(context.Background(), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestNewFromConfig_EmptyProviderIsDisabled(t *testing.T) {
	broker, err := NewFromConfig(config.StorageConfig{})
	require.NoError(t, err)

	_, err = broker.PresignUpload(context.Background(), "a.png", "image/png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestNewFromConfig_UnknownProvider(t *testing.T) {
	_, err := NewFromConfig(config.StorageConfig{Provider: "ftp"})
	assert.Error(t, err)
}

func TestNewFromConfig_S3SettingsDecode(t *testing.T) {
	broker, err := NewFromConfig(config.StorageConfig{
		Provider: "s3",
		Settings: map[string]any{
			"endpoint":   "minio.local:9000",
			"access_key": "key",
			"secret_key": "secret",
			"bucket":     "lounge",
			"use_ssl":    false,
		},
	})
	require.NoError(t, err)

	s3, ok := broker.(*S3Broker)
	require.True(t, ok)
	assert.Equal(t, "lounge", s3.bucket)
}

func TestNewFromConfig_S3MissingRequiredSettings(t *testing.T) {
	_, err := NewFromConfig(config.StorageConfig{
		Provider: "s3",
		Settings: map[string]any{"access_key": "key"},
	})
	assert.Error(t, err)
}

func TestS3Broker_PublicURL(t *testing.T) {
	tests := []struct {
		name     string
		settings S3Settings
		key      string
		want     string
	}{
		{
			name: "derived from endpoint and bucket",
			settings: S3Settings{
				Endpoint: "minio.local:9000",
				Bucket:   "lounge",
			},
			key:  "uploads/abc/cat.png",
			want: "http://minio.local:9000/lounge/uploads/abc/cat.png",
		},
		{
			name: "explicit public base wins",
			settings: S3Settings{
				Endpoint:  "minio.local:9000",
				Bucket:    "lounge",
				UseSSL:    true,
				PublicURL: "https://cdn.example.com/lounge",
			},
			key:  "uploads/abc/cat.png",
			want: "https://cdn.example.com/lounge/uploads/abc/cat.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker, err := NewS3Broker(tt.settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, broker.publicURL(tt.key))
		})
	}
}
