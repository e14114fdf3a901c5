package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/salaysay-tracker/backend/internal/common"
)

func restoreVars(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPre := newS3PresignClient
	origPut := putObject
	origList := listObjects
	origDel := deleteObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		newS3PresignClient = origPre
		putObject = origPut
		listObjects = origList
		deleteObject = origDel
		presignGetObject = origPresign
	})
}

func newTestStore(t *testing.T) *S3Store {
	t.Helper()
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000/" {
			t.Fatalf("base endpoint not applied")
		}
		return &s3.Client{}
	}
	store, err := NewS3Store(context.Background(), S3Config{
		AccessKey:    "admin",
		SecretKey:    "secret",
		Bucket:       "salaysay-uploads",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	})
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}
	return store
}

type apiError struct{ code string }

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestPut_SendsBucketKeyAndContentType(t *testing.T) {
	restoreVars(t)
	store := newTestStore(t)

	var got *s3.PutObjectInput
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		return &s3.PutObjectOutput{}, nil
	}

	err := store.Put(context.Background(), "123_report.pdf", strings.NewReader("%PDF-"), "application/pdf", 5)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if *got.Bucket != "salaysay-uploads" || *got.Key != "123_report.pdf" {
		t.Errorf("unexpected input: bucket=%q key=%q", *got.Bucket, *got.Key)
	}
	if *got.ContentType != "application/pdf" || *got.ContentLength != 5 {
		t.Errorf("content metadata not forwarded")
	}
}

func TestPut_MapsBucketAndPermissionErrors(t *testing.T) {
	restoreVars(t)
	store := newTestStore(t)

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, &apiError{code: "NoSuchBucket"}
	}
	if err := store.Put(context.Background(), "k", strings.NewReader(""), "application/pdf", 0); !errors.Is(err, common.ErrBucketNotFound) {
		t.Errorf("expected ErrBucketNotFound, got %v", err)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, &apiError{code: "AccessDenied"}
	}
	if err := store.Put(context.Background(), "k", strings.NewReader(""), "application/pdf", 0); !errors.Is(err, common.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestExists_MatchesExactKeyOnly(t *testing.T) {
	restoreVars(t)
	store := newTestStore(t)

	listObjects = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		if *in.Prefix != "123_report.pdf" {
			t.Fatalf("prefix = %q", *in.Prefix)
		}
		return &s3.ListObjectsV2Output{
			Contents: []types.Object{{Key: aws.String("123_report.pdf")}},
		}, nil
	}
	ok, err := store.Exists(context.Background(), "123_report.pdf")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true, nil", ok, err)
	}

	listObjects = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return &s3.ListObjectsV2Output{}, nil
	}
	ok, err = store.Exists(context.Background(), "123_report.pdf")
	if err != nil || ok {
		t.Fatalf("Exists = %v, %v; want false, nil", ok, err)
	}
}

func TestSignedGetURL_UsesPresignClient(t *testing.T) {
	restoreVars(t)
	store := newTestStore(t)

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Key != "123_report.pdf" {
			t.Fatalf("key = %q", *in.Key)
		}
		return &v4.PresignedHTTPRequest{URL: "https://signed.example/123_report.pdf"}, nil
	}

	url, err := store.SignedGetURL(context.Background(), "123_report.pdf", 60*time.Second)
	if err != nil {
		t.Fatalf("SignedGetURL: %v", err)
	}
	if url != "https://signed.example/123_report.pdf" {
		t.Errorf("url = %q", url)
	}
}

func TestDelete_ForwardsKey(t *testing.T) {
	restoreVars(t)
	store := newTestStore(t)

	var deleted string
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		deleted = *in.Key
		return &s3.DeleteObjectOutput{}, nil
	}
	if err := store.Delete(context.Background(), "123_report.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != "123_report.pdf" {
		t.Errorf("deleted = %q", deleted)
	}
}
