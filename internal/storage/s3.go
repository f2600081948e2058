// Package storage archives generated reports in an S3 compatible bucket (R2, MinIO, S3).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ledger-backend/internal/config"
)

// putter is the part of *s3.Client the archive uses.
type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ReportArchive struct {
	client putter
	bucket string
}

// NewReportArchive returns nil when storage is disabled.
func NewReportArchive(ctx context.Context, cfg config.StorageConfig) (*ReportArchive, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &ReportArchive{client: client, bucket: cfg.Bucket}, nil
}

// ReportKey is reports/<client id>/<file name>. Only the last segment of
// fileName is kept, so the key never leaves the client's prefix.
func ReportKey(clientID int, fileName string) string {
	prefix := "reports/" + strconv.Itoa(clientID) + "/"
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		base = "rapport.pdf"
	}
	return prefix + base
}

// Put uploads one PDF and returns its object key.
func (a *ReportArchive) Put(ctx context.Context, clientID int, fileName string, pdf []byte) (string, error) {
	key := ReportKey(clientID, fileName)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(pdf),
		ContentType:   aws.String("application/pdf"),
		ContentLength: aws.Int64(int64(len(pdf))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}
