// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectStore is the subset of the S3 API used by S3Loader.
type objectStore interface {
	StatObject(ctx context.Context, bucket, key string) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// minioStore wraps *minio.Client to implement objectStore.
type minioStore struct {
	client *minio.Client
}

func (m *minioStore) StatObject(ctx context.Context, bucket, key string) (minio.ObjectInfo, error) {
	return m.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
}

func (m *minioStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

// S3Loader reads resources from an S3 compatible bucket. Locations are
// object keys relative to Prefix.
type S3Loader struct {
	Bucket string
	Prefix string

	store objectStore
}

// NewS3Loader connects to the endpoint in opts with static credentials.
func NewS3Loader(opts Options) (*S3Loader, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("s3 repository needs endpoint and bucket")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client for %s: %w", opts.Endpoint, err)
	}
	return &S3Loader{Bucket: opts.Bucket, Prefix: opts.Prefix, store: &minioStore{client: client}}, nil
}

// Load streams the object at location. Modified is the object's
// LastModified time.
func (s *S3Loader) Load(ctx context.Context, location string) (*Content, error) {
	loc, err := cleanLocation(location)
	if err != nil {
		return nil, err
	}
	key := loc
	if s.Prefix != "" {
		key = path.Join(s.Prefix, loc)
	}

	info, err := s.store.StatObject(ctx, s.Bucket, key)
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s in bucket %s: %w", key, s.Bucket, ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s in bucket %s: %w", key, s.Bucket, err)
	}

	obj, err := s.store.GetObject(ctx, s.Bucket, key)
	if err != nil {
		return nil, fmt.Errorf("get %s from bucket %s: %w", key, s.Bucket, err)
	}
	slog.Debug("loaded s3 content", "bucket", s.Bucket, "key", key, "size", info.Size)
	return &Content{Body: obj, Modified: info.LastModified}, nil
}
