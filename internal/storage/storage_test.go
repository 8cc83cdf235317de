package storage

import (
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/logging"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	keys    []string
	expires time.Duration
	err     error
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	f.keys = append(f.keys, key)
	f.expires = expires
	if f.err != nil {
		return "", f.err
	}
	return "https://signed.example.com/" + key + "?sig=1", nil
}

func TestResolveImageURL(t *testing.T) {
	ctx := context.Background()

	t.Run("nil resolver passes through", func(t *testing.T) {
		var r *ImageResolver
		assert.Equal(t, "avatars/a.png", r.ResolveImageURL(ctx, "avatars/a.png"))
	})

	t.Run("absolute URLs and empty refs are untouched", func(t *testing.T) {
		store := &fakeStorage{}
		r := NewImageResolver(store, 0, logging.Discard())
		assert.Equal(t, "https://cdn.example.com/a.png", r.ResolveImageURL(ctx, "https://cdn.example.com/a.png"))
		assert.Equal(t, "HTTP://cdn.example.com/b.png", r.ResolveImageURL(ctx, "HTTP://cdn.example.com/b.png"))
		assert.Equal(t, "", r.ResolveImageURL(ctx, ""))
		assert.Empty(t, store.keys)
	})

	t.Run("object keys are presigned", func(t *testing.T) {
		store := &fakeStorage{}
		r := NewImageResolver(store, 0, logging.Discard())
		assert.Equal(t, "https://signed.example.com/avatars/a.png?sig=1", r.ResolveImageURL(ctx, "/avatars/a.png"))
		assert.Equal(t, []string{"avatars/a.png"}, store.keys)
		assert.Equal(t, DefaultPresignedURLExpiry, store.expires)
	})

	t.Run("presign failure keeps the reference", func(t *testing.T) {
		store := &fakeStorage{err: errors.New("no credentials")}
		r := NewImageResolver(store, time.Minute, logging.Discard())
		assert.Equal(t, "avatars/a.png", r.ResolveImageURL(ctx, "avatars/a.png"))
	})
}

func TestS3Storage_PresignsPathStyle(t *testing.T) {
	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "avatars",
	}, logging.Discard())
	require.NoError(t, err)

	url, err := store.GeneratePresignedDownloadURL(context.Background(), "users/a.png", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/avatars/users/a.png?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.Contains(t, url, "X-Amz-Signature=")
}
