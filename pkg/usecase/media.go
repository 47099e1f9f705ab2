package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// MaxUploadSize bounds a single media upload
const MaxUploadSize = 10 << 20

// imageExtensions maps accepted upload content types to the stored
// object extension. Anything else is rejected.
var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ObjectStore persists media blobs and returns their public URL
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// MediaUseCase handles admin media uploads: news featured images,
// gallery shots, partner logos. The resulting URLs are pasted into the
// records that reference them.
type MediaUseCase struct {
	store ObjectStore
	now   func() time.Time
}

func NewMediaUseCase(store ObjectStore) *MediaUseCase {
	return &MediaUseCase{
		store: store,
		now:   time.Now,
	}
}

// UploadResult describes a stored media object
type UploadResult struct {
	Key string
	URL string
}

// Upload validates and stores one image. Keys are partitioned by
// year/month so the bucket stays browsable.
func (u *MediaUseCase) Upload(ctx context.Context, contentType string, data []byte) (*UploadResult, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, goerr.Wrap(ErrUnsupportedMedia, "only image uploads are accepted",
			goerr.V("content_type", contentType))
	}
	if len(data) == 0 {
		return nil, goerr.Wrap(model.ErrValidation, "empty upload")
	}
	if len(data) > MaxUploadSize {
		return nil, goerr.Wrap(ErrUploadTooLarge, "upload exceeds size limit",
			goerr.V("size", len(data)))
	}

	key := fmt.Sprintf("uploads/%s/%s%s", u.now().UTC().Format("2006/01"), uuid.NewString(), ext)
	url, err := u.store.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store media object")
	}

	return &UploadResult{Key: key, URL: url}, nil
}
