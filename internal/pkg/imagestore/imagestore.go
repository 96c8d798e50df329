package imagestore

import (
	"context"
	"fmt"
	"mime/multipart"

	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// UploadResult identifies a stored image: a serving URL plus the storage
// key needed to delete it later.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Store abstracts the external image host. Handlers never talk to
// Cloudinary directly; they get a Store injected at startup so development
// environments without credentials can run against the disabled store.
type Store interface {
	Upload(ctx context.Context, file multipart.File, filename string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// Upload constraints, enforced before any bytes leave the process.
const (
	MaxImageCount = 5
	MaxImageSize  = int64(5 * 1024 * 1024) // 5MB
)

// upstreamErr tags a provider failure with ErrUpstream so callers can
// tell host outages apart from local mistakes.
func upstreamErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, errs.ErrUpstream, err)
}
