package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob"
	"gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// S3Provider keeps artifacts in an S3 bucket through gocloud's s3blob
// driver.
type S3Provider struct {
	bucket     *blob.Bucket
	bucketName string
	region     string
}

// NewS3Provider parses s3://bucket-name?region=us-east-1.
func NewS3Provider(bucketURL string) (*S3Provider, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bucket URL: %w", err)
	}
	bucketName := u.Host
	if bucketName == "" {
		return nil, fmt.Errorf("bucket URL %s has no bucket name", bucketURL)
	}

	region := u.Query().Get("region")
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	bucket, err := s3blob.OpenBucket(context.Background(), client, bucketName, nil)
	if err != nil {
		return nil, fmt.Errorf("open S3 bucket: %w", err)
	}

	return &S3Provider{bucket: bucket, bucketName: bucketName, region: region}, nil
}

func (p *S3Provider) GetType() string {
	return "s3"
}

func (p *S3Provider) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
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

func (p *S3Provider) Get(ctx context.Context, key string) (io.ReadCloser, error) {
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

func (p *S3Provider) Delete(ctx context.Context, key string) error {
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

func (p *S3Provider) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	return p.bucket.Exists(ctx, key)
}

func (p *S3Provider) Close() error {
	return p.bucket.Close()
}
