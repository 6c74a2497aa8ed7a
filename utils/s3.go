package utils

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectUploader is the part of the S3 client the image mirror needs
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Bucket uploads objects to one S3 bucket
type Bucket struct {
	Name     string
	Region   string
	Uploader ObjectUploader
}

// InitS3 initializes an S3 client for the bucket
func InitS3(ctx context.Context, name, region string) (*Bucket, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	zap.S().Infof("S3 client initialized for bucket %s", name)
	return &Bucket{
		Name:     name,
		Region:   region,
		Uploader: s3.NewFromConfig(cfg),
	}, nil
}

// UploadFile uploads a file to the bucket and returns the Object Key
func (b *Bucket) UploadFile(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error) {
	_, err := b.Uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.Name),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return objectKey, nil
}

// PublicURL is the virtual-hosted style URL of objectKey in the bucket
func (b *Bucket) PublicURL(objectKey string) string {
	u := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.s3.%s.amazonaws.com", b.Name, b.Region),
		Path:   "/" + objectKey,
	}
	return u.String()
}
