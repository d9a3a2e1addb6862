package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultLinkTTL is how long a presigned export link stays valid.
const DefaultLinkTTL = 24 * time.Hour

// R2Sink uploads exports to a Cloudflare R2 (or any S3-compatible) bucket.
type R2Sink struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
	linkTTL    time.Duration
}

// NewR2Sink builds a sink for bucketName.
// endpoint should be "https://<account-id>.r2.cloudflarestorage.com".
func NewR2Sink(accessKeyID, secretAccessKey, endpoint, bucketName string) *R2Sink {
	cfg := aws.Config{
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		BaseEndpoint: aws.String(endpoint),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// R2 requires path-style addressing
		o.UsePathStyle = true
	})

	return &R2Sink{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: bucketName,
		linkTTL:    DefaultLinkTTL,
	}
}

func (s *R2Sink) Save(ctx context.Context, subDir, name string, r io.Reader) (string, error) {
	key := joinKey(subDir, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return key, nil
}

func (s *R2Sink) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// Location is a presigned GET URL for key.
func (s *R2Sink) Location(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.linkTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return req.URL, nil
}
