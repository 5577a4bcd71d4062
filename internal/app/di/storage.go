package di

import (
	"context"

	"github.com/sirupsen/logrus"

	"job_portal_backend/internal/platform/config"
	"job_portal_backend/internal/platform/storage"
)

// NewResumeStore creates the GCS-backed resume store.
// It returns (nil, nil, nil) when GCS_BUCKET is not configured.
func NewResumeStore(ctx context.Context, cfg *config.Config) (*storage.GCSStore, func() error, error) {
	if cfg.GCSBucket == "" {
		logrus.Info("GCS_BUCKET not set, resume uploads disabled")
		return nil, nil, nil
	}
	client, err := storage.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		return nil, nil, err
	}
	logrus.WithField("bucket", cfg.GCSBucket).Info("resume store configured")
	return storage.NewGCSStore(client, cfg.GCSBucket), client.Close, nil
}
