package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	sc "github.com/dmitrijs2005/talentledger/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubS3(t *testing.T, head func(key string) error) *atomic.Int32 {
	t.Helper()

	origLoad, origNew, origHead, origPresign := loadDefaultAWSConfig, newS3ClientFromConfig, headObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, headObject, presignGetObject = origLoad, origNew, origHead, origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		require.NotNil(t, o.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *o.BaseEndpoint)
		return &s3.Client{}
	}

	var presigned atomic.Int32
	headObject = func(c *s3.Client, ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
		if err := head(*in.Key); err != nil {
			return nil, err
		}
		return &s3.HeadObjectOutput{}, nil
	}
	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 10*time.Minute, po.Expires)
		presigned.Add(1)
		return &v4.PresignedHTTPRequest{URL: "https://photos/" + *in.Key}, nil
	}
	return &presigned
}

func newPhotoService() *PhotoService {
	return NewPhotoService(&sc.Config{
		S3Region:         "us-east-1",
		S3BaseEndpoint:   "http://127.0.0.1:9000",
		S3Bucket:         "candidate-photos",
		PhotoURLValidity: 10 * time.Minute,
	})
}

func TestPhotoURLs_SkipsMissing(t *testing.T) {
	presigned := stubS3(t, func(key string) error {
		switch {
		case strings.Contains(key, "/c2/"):
			return &types.NotFound{}
		case strings.Contains(key, "/c3/"):
			return &smithy.GenericAPIError{Code: "NoSuchKey"}
		}
		return nil
	})

	urls, err := newPhotoService().PhotoURLs(context.Background(), []string{"c1", "c2", "c3", "c4"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"c1": "https://photos/candidates/c1/photo.jpg",
		"c4": "https://photos/candidates/c4/photo.jpg",
	}, urls)
	assert.Equal(t, int32(2), presigned.Load())
}

func TestPhotoURLs_Empty(t *testing.T) {
	urls, err := newPhotoService().PhotoURLs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestPhotoURLs_HeadFailure(t *testing.T) {
	stubS3(t, func(key string) error { return errors.New("throttled") })

	_, err := newPhotoService().PhotoURLs(context.Background(), []string{"c1"})
	assert.ErrorContains(t, err, "throttled")
}

func TestPhotoURLs_ConfigFailure(t *testing.T) {
	stubS3(t, func(string) error { return nil })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := newPhotoService().PhotoURLs(context.Background(), []string{"c1"})
	assert.EqualError(t, err, "load-fail")
}
