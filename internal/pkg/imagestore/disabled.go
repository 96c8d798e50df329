package imagestore

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync/atomic"
)

// DisabledStore stands in when Cloudinary credentials are missing. Uploads
// hand back a placeholder URL so the rest of the flow keeps working in
// development; deletes are no-ops.
type DisabledStore struct {
	counter atomic.Int64
}

func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

func (s *DisabledStore) Upload(ctx context.Context, file multipart.File, filename string) (*UploadResult, error) {
	n := s.counter.Add(1)
	return &UploadResult{
		URL:      "https://via.placeholder.com/400x300?text=Image+Upload+Disabled",
		PublicID: fmt.Sprintf("disabled-image-%d", n),
	}, nil
}

func (s *DisabledStore) Delete(ctx context.Context, publicID string) error {
	return nil
}
