package storage

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the object storage operations the API needs.
type FileStorage interface {
	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// ImageResolver turns stored profile image references into URLs a browser
// can load. A nil *ImageResolver returns references unchanged.
type ImageResolver struct {
	store  FileStorage
	expiry time.Duration
	log    logrus.FieldLogger
}

// NewImageResolver wraps store. expiry <= 0 uses DefaultPresignedURLExpiry.
func NewImageResolver(store FileStorage, expiry time.Duration, log logrus.FieldLogger) *ImageResolver {
	if expiry <= 0 {
		expiry = DefaultPresignedURLExpiry
	}
	return &ImageResolver{store: store, expiry: expiry, log: log}
}

// ResolveImageURL returns ref as is when it is empty or already an absolute
// http(s) URL. Anything else is an object key and gets a presigned GET URL.
// If presigning fails the reference is returned and the error logged.
func (r *ImageResolver) ResolveImageURL(ctx context.Context, ref string) string {
	if r == nil || r.store == nil || ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	url, err := r.store.GeneratePresignedDownloadURL(ctx, strings.TrimPrefix(ref, "/"), r.expiry)
	if err != nil {
		r.log.WithError(err).WithField("object_key", ref).Warn("Failed to presign profile image")
		return ref
	}
	return url
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
