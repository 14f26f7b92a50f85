package objstore

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/SEUB66/sofartist-lounge/internal/infra/config"
)

// NewFromConfig builds a Broker from the storage configuration.
// Provider "none" yields a broker that rejects every upload request.
func NewFromConfig(cfg config.StorageConfig) (Broker, error) {
	switch cfg.Provider {
	case "", "none":
		return disabledBroker{}, nil
	case "s3":
		var settings S3Settings
		if err := mapstructure.Decode(cfg.Settings, &settings); err != nil {
			return nil, errors.Wrap(err, "invalid s3 storage settings")
		}
		return NewS3Broker(settings)
	default:
		return nil, errors.Newf("unknown storage provider: %s", cfg.Provider)
	}
}
