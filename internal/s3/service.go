package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/tutordesk/tutordesk/internal/config"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/types"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

// Service archives rendered invoice documents in a bucket
type Service interface {
	UploadDocument(ctx context.Context, document *Document) error
	GetPresignedUrl(ctx context.Context, id string, format types.DocumentFormat) (string, error)
	Exists(ctx context.Context, id string, format types.DocumentFormat) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
	logger *logger.Logger
}

// NewService returns nil when archiving is disabled
func NewService(cfg *config.Configuration, log *logger.Logger) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}
	if cfg.S3.DocumentBucket == "" {
		return nil, ierr.NewError("s3 document bucket is not configured").
			WithHint("s3.document_bucket is required when s3 is enabled").
			Mark(ierr.ErrValidation)
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3.UsePathStyle
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
	})

	log.Infow("invoice documents will be archived to s3",
		"bucket", cfg.S3.DocumentBucket,
		"prefix", cfg.S3.KeyPrefix,
	)

	return &s3ServiceImpl{
		config: &cfg.S3,
		client: client,
		logger: log,
	}, nil
}

func (s *s3ServiceImpl) getObjectKey(id string, format types.DocumentFormat) (string, error) {
	switch format {
	case types.DocumentFormatPDF, types.DocumentFormatDOCX:
	default:
		return "", ierr.NewErrorf("invalid document format: %s", format).
			WithHint("valid formats are pdf and docx").
			Mark(ierr.ErrSystem)
	}

	prefix := strings.Trim(s.config.KeyPrefix, "/")
	if prefix != "" {
		return fmt.Sprintf("%s/%s.%s", prefix, id, format), nil
	}
	return fmt.Sprintf("%s.%s", id, format), nil
}

func (s *s3ServiceImpl) presignExpiry() time.Duration {
	if s.config.PresignExpiry <= 0 {
		return defaultPresignExpiryDuration
	}
	return s.config.PresignExpiry
}

// Exists implements Service.
func (s *s3ServiceImpl) Exists(ctx context.Context, id string, format types.DocumentFormat) (bool, error) {
	key, err := s.getObjectKey(id, format)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.DocumentBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		var nf *s3types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("failed to check if document exists").
			Mark(ierr.ErrHTTPClient)
	}

	return true, nil
}

// GetPresignedUrl implements Service.
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, id string, format types.DocumentFormat) (string, error) {
	key, err := s.getObjectKey(id, format)
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.DocumentBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiry()))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.config.DocumentBucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}

// UploadDocument implements Service.
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) error {
	key, err := s.getObjectKey(document.ID, document.Format)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.DocumentBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(document.Data),
		ContentType: aws.String(document.ContentType()),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.DocumentBucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	s.logger.Debugw("uploaded invoice document", "key", key, "size", len(document.Data))
	return nil
}
