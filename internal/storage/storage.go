package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNotFound   = errors.New("storage: object not found")
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Storage is where archived recording scripts live.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Provider is a Storage bound to a concrete backend.
type Provider interface {
	Storage
	GetType() string
	Close() error
}

// New selects a provider from the bucket URL scheme:
// file:///var/lib/autoscribe/artifacts or s3://bucket?region=us-east-1.
func New(bucketURL string) (Provider, error) {
	switch {
	case strings.HasPrefix(bucketURL, "s3://"):
		return NewS3Provider(bucketURL)
	case strings.HasPrefix(bucketURL, "file://"), !strings.Contains(bucketURL, "://"):
		return NewLocalProvider(bucketURL)
	default:
		return nil, fmt.Errorf("unsupported bucket URL: %s", bucketURL)
	}
}

// ScriptKey is the artifact key for a recording's generated script.
func ScriptKey(recordingID string) string {
	return "recordings/" + recordingID + ".spec.js"
}

func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}
