package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// LocalProvider keeps artifacts on the local filesystem through
// gocloud's fileblob driver.
type LocalProvider struct {
	bucket   *blob.Bucket
	basePath string
}

func NewLocalProvider(bucketURL string) (*LocalProvider, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bucket URL: %w", err)
	}

	basePath := u.Path
	if u.Scheme == "" {
		basePath = bucketURL
	} else if u.Host != "" {
		basePath = filepath.Join(u.Host, u.Path)
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	bucket, err := fileblob.OpenBucket(basePath, nil)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}

	return &LocalProvider{bucket: bucket, basePath: basePath}, nil
}

func (p *LocalProvider) GetType() string {
	return "local"
}

func (p *LocalProvider) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	w, err := p.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("open writer: %w", err)
	}
	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return fmt.Errorf("write object: %w", err)
	}
	return w.Close()
}

func (p *LocalProvider) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	r, err := p.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open reader: %w", err)
	}
	return r, nil
}

func (p *LocalProvider) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := p.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (p *LocalProvider) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	return p.bucket.Exists(ctx, key)
}

func (p *LocalProvider) Close() error {
	return p.bucket.Close()
}
