package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"go-skillhub-backend/pkg/apperror"
)

// S3Config holds configuration for S3-compatible storage
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// PublicBaseURL is the URL prefix objects are served from, e.g.
	// "https://<bucket>.s3.<region>.amazonaws.com" or a CDN host.
	PublicBaseURL string
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Storage creates the blob collaborator client backed by S3.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: cfg.PublicBaseURL,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, r io.Reader, folder string, t Transform) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperror.Unavailable("Image upload failed.", err)
	}

	transformed, err := applyTransform(data, t)
	if err != nil {
		return "", apperror.ValidationFailed("image", "Uploaded file is not a valid image.")
	}

	key := fmt.Sprintf("%s/%s.jpg", folder, uuid.NewString())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(transformed),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", apperror.Unavailable("Image upload failed.", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *S3Storage) Destroy(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID + ".jpg"),
	})
	if err != nil {
		return apperror.Unavailable("Image delete failed.", err)
	}
	return nil
}
