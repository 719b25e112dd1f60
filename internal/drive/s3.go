package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/daylog/internal/common"
)

// trashPrefix is where soft-deleted objects are parked.
const trashPrefix = "trash/"

// S3Config holds connection settings for an S3-compatible backend
// (AWS or MinIO).
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// s3API is the subset of the S3 client used by S3Store, kept as an interface
// so tests can substitute a fake.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	CopyObject(ctx context.Context, in *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store implements ObjectStore on an S3 bucket. Folders are zero-byte
// marker objects whose keys end in "/", so the drive-style folder chain can
// be created and listed level by level. Soft deletion moves objects under
// the trash prefix instead of removing them.
type S3Store struct {
	api    s3API
	bucket string
}

// NewS3Store builds an S3Store from static credentials and an optional custom
// base endpoint (MinIO-compatible).
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{api: client, bucket: cfg.Bucket}, nil
}

// newS3StoreWithAPI is the test seam.
func newS3StoreWithAPI(api s3API, bucket string) *S3Store {
	return &S3Store{api: api, bucket: bucket}
}

// EnsureFolder creates the folder marker if it is not there yet. Two writers
// racing on the same folder both succeed: the marker write is idempotent.
func (s *S3Store) EnsureFolder(ctx context.Context, folder string) error {
	key := folder + "/"

	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("head folder %s: %w", folder, err)
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return fmt.Errorf("create folder %s: %w", folder, err)
	}
	return nil
}

// Put writes body at key, overwriting any existing object. The returned
// reference is the object key itself; it is resolved back through Read.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

// List returns the objects directly under folder, skipping subfolders and
// the folder marker itself. A folder that was never created lists empty.
func (s *S3Store) List(ctx context.Context, folder string) ([]Object, error) {
	prefix := folder + "/"

	var result []Object
	var token *string
	for {
		out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", folder, err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				continue
			}
			result = append(result, Object{Name: path.Base(key), Path: key})
		}

		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}
	return result, nil
}

// Read returns the object bytes, or common.ErrNotFound.
func (s *S3Store) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("object %s: %w", key, common.ErrNotFound)
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

// Trash moves the object under the trash prefix. An absent object reports
// (false, nil).
func (s *S3Store) Trash(ctx context.Context, key string) (bool, error) {
	_, err := s.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + key),
		Key:        aws.String(trashPrefix + key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("copy to trash %s: %w", key, err)
	}

	_, err = s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("delete object %s: %w", key, err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
