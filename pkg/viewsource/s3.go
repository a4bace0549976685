package viewsource

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client the source uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source serves views from an S3 bucket. View names become object keys
// under the configured prefix.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	src := viewsource.NewS3Source(s3.NewFromConfig(cfg), "my-bucket", "views/")
type S3Source struct {
	client  S3API
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3Source creates an S3-backed view source.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2
//   - bucket: S3 bucket name
//   - prefix: Key prefix for view objects (e.g., "views/")
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// WithMaxSize bounds the size of fetched views (0 = no limit).
func (s *S3Source) WithMaxSize(n int64) *S3Source {
	s.maxSize = n
	return s
}

// Fetch downloads the named view object.
func (s *S3Source) Fetch(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + name),
	})
	if err != nil {
		var nf *types.NoSuchKey
		if errors.As(err, &nf) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 fetch failed: %w", err)
	}
	defer out.Body.Close()

	var r io.Reader = out.Body
	if s.maxSize > 0 {
		r = io.LimitReader(out.Body, s.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
