package config

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/robofest-ru/robofest/pkg/service/media"
)

// Media holds CLI flags for the upload object store
type Media struct {
	bucket string
}

func (x *Media) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "media-bucket",
			Usage:       "Cloud Storage bucket for media uploads. Empty disables uploads",
			Category:    "Media",
			Sources:     cli.EnvVars("ROBOFEST_MEDIA_BUCKET"),
			Destination: &x.bucket,
		},
	}
}

// IsConfigured reports whether a bucket was provided
func (x *Media) IsConfigured() bool {
	return x.bucket != ""
}

// Configure builds the media store, or nil when uploads are disabled.
// The caller owns closing the returned store.
func (x *Media) Configure(ctx context.Context) (*media.Store, error) {
	if x.bucket == "" {
		return nil, nil
	}
	return media.New(ctx, x.bucket)
}
