package provider

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	fs "github.com/dreitier/treelist/storage/fs"
	"github.com/stretchr/testify/assert"
)

// fakeListObjects serves pre-defined pages, indexed by continuation token
type fakeListObjects struct {
	pages  map[string]*s3.ListObjectsV2Output
	err    error
	inputs []*s3.ListObjectsV2Input
}

func (f *fakeListObjects) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.inputs = append(f.inputs, params)

	if f.err != nil {
		return nil, f.err
	}

	return f.pages[aws.ToString(params.ContinuationToken)], nil
}

func object(key string, size int64) types.Object {
	return types.Object{
		Key:          aws.String(key),
		Size:         aws.Int64(size),
		LastModified: aws.Time(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func Test_splitBucket(t *testing.T) {
	assertion := assert.New(t)

	bucket, prefix := splitBucket("backups/db/daily/")
	assertion.Equal("backups", bucket)
	assertion.Equal("db/daily/", prefix)

	bucket, prefix = splitBucket("/backups")
	assertion.Equal("backups", bucket)
	assertion.Equal("", prefix)
}

func Test_S3Client_List_paginatesAndSynthesizesDirectories(t *testing.T) {
	assertion := assert.New(t)

	fake := &fakeListObjects{pages: map[string]*s3.ListObjectsV2Output{
		"": {
			Contents:              []types.Object{object("db/a/b/f1.txt", 100), object("db/a/empty/", 0)},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("page-2"),
		},
		"page-2": {
			Contents:    []types.Object{object("db/a/c/f2.txt", 50), object("db/top.txt", 1)},
			IsTruncated: aws.Bool(false),
		},
	}}

	sut := &S3Client{s3Client: fake}
	entries, err := sut.List(context.Background(), "s3:backups/db")
	assertion.NoError(err)

	assertion.Len(fake.inputs, 2)
	assertion.Equal("backups", aws.ToString(fake.inputs[0].Bucket))
	assertion.Equal("db/", aws.ToString(fake.inputs[0].Prefix))

	byPath := make(map[string]fs.Entry)
	var paths []string
	for _, entry := range entries {
		byPath[entry.Path] = entry
		paths = append(paths, entry.Path)
	}
	sort.Strings(paths)

	assertion.Equal([]string{"a", "a/b", "a/b/f1.txt", "a/c", "a/c/f2.txt", "a/empty", "top.txt"}, paths)
	assertion.True(byPath["a"].IsDir)
	assertion.True(byPath["a/empty"].IsDir)
	assertion.Equal("empty", byPath["a/empty"].Name)
	assertion.Equal(int64(100), byPath["a/b/f1.txt"].Size)
	assertion.Equal("f1.txt", byPath["a/b/f1.txt"].Name)
	assertion.Equal(2024, byPath["a/c/f2.txt"].ModTime.Year())
}

func Test_S3Client_List_reportsApiErrorCode(t *testing.T) {
	assertion := assert.New(t)

	fake := &fakeListObjects{err: &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}}

	sut := &S3Client{s3Client: fake}
	_, err := sut.List(context.Background(), "s3:missing")

	assertion.ErrorContains(err, "NoSuchBucket: The specified bucket does not exist")
}

func Test_S3Client_List_requiresBucket(t *testing.T) {
	assertion := assert.New(t)

	sut := &S3Client{s3Client: &fakeListObjects{}}
	_, err := sut.List(context.Background(), "s3:")

	assertion.ErrorContains(err, "does not name a bucket")
}
