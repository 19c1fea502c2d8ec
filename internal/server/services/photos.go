package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	sc "github.com/dmitrijs2005/talentledger/internal/server/config"
	"golang.org/x/sync/errgroup"
)

// photoLookupLimit bounds concurrent HeadObject calls per request.
const photoLookupLimit = 8

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	headObject = func(c *s3.Client, ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
		return c.HeadObject(ctx, in)
	}

	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return s3.NewPresignClient(c).PresignGetObject(ctx, in, optFns...)
	}
)

// PhotoService resolves display-photo URLs for candidates stored in S3.
type PhotoService struct {
	config *sc.Config
}

func NewPhotoService(cfg *sc.Config) *PhotoService {
	return &PhotoService{config: cfg}
}

// PhotoKey is the object key of a candidate's display photo.
func PhotoKey(candidateID string) string {
	return fmt.Sprintf("candidates/%s/photo.jpg", candidateID)
}

func (s *PhotoService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// PhotoURLs returns presigned GET URLs for the candidates that have a photo.
// Candidates without one are absent from the map.
func (s *PhotoService) PhotoURLs(ctx context.Context, candidateIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return result, nil
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(photoLookupLimit)

	bucket := s.config.S3Bucket
	for _, id := range candidateIDs {
		id := id
		g.Go(func() error {
			key := PhotoKey(id)

			_, err := headObject(client, gctx, &s3.HeadObjectInput{Bucket: &bucket, Key: &key})
			if err != nil {
				if isNotFound(err) {
					return nil
				}
				return fmt.Errorf("head %s: %w", key, err)
			}

			req, err := presignGetObject(client, gctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key},
				s3.WithPresignExpires(s.urlValidity()))
			if err != nil {
				return fmt.Errorf("presign %s: %w", key, err)
			}

			mu.Lock()
			result[id] = req.URL
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PhotoService) urlValidity() time.Duration {
	if s.config.PhotoURLValidity > 0 {
		return s.config.PhotoURLValidity
	}
	return 15 * time.Minute
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
