package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/PhantomInTheWire/nineslice/pkg/slicer"
	"github.com/allape/gogger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var l = gogger.New("storage")

var ErrUpload = errors.New("upload error")

// S3Config points at an S3 bucket, or any S3-compatible store such as MinIO
// when Endpoint is set.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// Uploader publishes written tiles to a bucket.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewUploader(ctx context.Context, cfg S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: no bucket configured", ErrUpload)
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %w", ErrUpload, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// MinIO and friends address buckets by path and do not all accept
		// the trailing checksums newer SDKs send by default.
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// EnsureBucket creates the bucket unless it already exists.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err == nil {
		return nil
	}
	_, err = u.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil {
		return fmt.Errorf("%w: create bucket %s: %w", ErrUpload, u.bucket, err)
	}
	l.Verbose().Println("created bucket", u.bucket)
	return nil
}

// Key returns the object key a tile file is stored under.
func (u *Uploader) Key(tilePath string) string {
	return path.Join(u.prefix, filepath.Base(tilePath))
}

// UploadTiles puts every written tile into the bucket and returns the keys in
// tile order. Skipped tiles have no file and are left out. The first failure
// stops the upload.
func (u *Uploader) UploadTiles(ctx context.Context, tiles []slicer.Tile) ([]string, error) {
	keys := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		if tile.Skipped {
			continue
		}
		key := u.Key(tile.Path)
		if err := u.put(ctx, key, tile.Path); err != nil {
			return keys, err
		}
		l.Verbose().Println("uploaded", key)
		keys = append(keys, key)
	}
	return keys, nil
}

func (u *Uploader) put(ctx context.Context, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrUpload, file, err)
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("%w: put s3://%s/%s: %w", ErrUpload, u.bucket, key, err)
	}
	return nil
}
