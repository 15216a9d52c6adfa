package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
)

type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive keeps gzipped monthly reports in an S3 bucket.
type Archive struct {
	client s3Client
	bucket string
	prefix string
}

// NewArchive uses the default AWS credential chain.
func NewArchive(ctx context.Context, bucket, cwsu string) (*Archive, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Archive{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: "reports/" + cwsu + "/"}, nil
}

// Key is where the report is stored in the bucket.
func (a *Archive) Key(r *Report) string {
	return fmt.Sprintf("%s%d/%s.gz", a.prefix, r.Year, r.FileName())
}

// Upload compresses the text report and stores it, returning its key.
func (a *Archive) Upload(ctx context.Context, r *Report) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Name = r.FileName()
	if err := r.WriteText(zw); err != nil {
		return "", fmt.Errorf("failed to compress report: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress report: %w", err)
	}

	key := a.Key(r)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(a.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(buf.Bytes()),
		ContentType:     aws.String("text/plain"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}
