package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Location is a parsed s3://bucket/key reference.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string { return "s3://" + l.Bucket + "/" + l.Key }

// IsS3 reports whether ref names an S3 object.
func IsS3(ref string) bool { return strings.HasPrefix(ref, "s3://") }

// ParseS3URL splits s3://bucket/key.
func ParseS3URL(ref string) (Location, error) {
	if !IsS3(ref) {
		return Location{}, fmt.Errorf("not an s3 url: %s", ref)
	}
	path := strings.TrimPrefix(ref, "s3://")
	slash := strings.Index(path, "/")
	if slash <= 0 || slash == len(path)-1 {
		return Location{}, fmt.Errorf("invalid s3 url: %s", ref)
	}
	return Location{Bucket: path[:slash], Key: path[slash+1:]}, nil
}

// S3Client uploads generated documents.
type S3Client struct {
	uploader *manager.Uploader
}

// NewS3Client loads the default AWS credential chain.
func NewS3Client(ctx context.Context) (*S3Client, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Client{uploader: manager.NewUploader(s3.NewFromConfig(cfg))}, nil
}

// Upload streams body to loc with the given content type.
func (s *S3Client) Upload(ctx context.Context, loc Location, body io.Reader, contentType string, meta map[string]string) error {
	log.Info().Str("bucket", loc.Bucket).Str("key", loc.Key).Msg("uploading to s3")
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata:    meta,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	log.Info().Str("location", out.Location).Msg("s3 upload complete")
	return nil
}
