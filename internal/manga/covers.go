package manga

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// CoverStore serves cover art straight from object storage through
// short-lived presigned GET URLs, so image bytes never flow through the API.
type CoverStore struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// NewCoverStore constructs a cover store over the given bucket.
func NewCoverStore(client *minio.Client, bucket string, ttl time.Duration) *CoverStore {
	return &CoverStore{
		client: client,
		bucket: bucket,
		ttl:    ttl,
	}
}

// CoverURL resolves an object key to a presigned URL. Entries without cover
// art resolve to an empty URL.
func (s *CoverStore) CoverURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign cover %q: %w", key, err)
	}

	return presigned.String(), nil
}
