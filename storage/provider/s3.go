package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	fs "github.com/dreitier/treelist/storage/fs"
	log "github.com/sirupsen/logrus"
)

const DefaultRegion = "eu-central-1"

// S3Client lists the objects below `bucket/prefix`, where the remote is given as `name:bucket/prefix`
type S3Client struct {
	AccessKey      string
	SecretKey      string
	Token          string
	Region         string
	Endpoint       string
	ForcePathStyle bool
	s3Client       s3.ListObjectsV2APIClient
}

func getClient(ctx context.Context, c *S3Client) (s3.ListObjectsV2APIClient, error) {
	if c.s3Client != nil {
		return c.s3Client, nil
	}

	region := c.Region
	if len(region) == 0 {
		region = DefaultRegion
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	if len(c.AccessKey) > 0 {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.Token),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to build S3 client: %w", err)
	}

	c.s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if len(c.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}

		o.UsePathStyle = c.ForcePathStyle
	})

	return c.s3Client, nil
}

// splitBucket separates `bucket/some/prefix` into the bucket and a prefix ending with a separator
func splitBucket(path string) (bucket string, prefix string) {
	path = strings.Trim(path, fs.Separator)
	bucket, prefix, _ = strings.Cut(path, fs.Separator)

	if prefix != "" {
		prefix = strings.TrimSuffix(prefix, fs.Separator) + fs.Separator
	}

	return bucket, prefix
}

func (c *S3Client) List(ctx context.Context, remote string) ([]fs.Entry, error) {
	bucket, prefix := splitBucket(RemotePath(remote))

	if bucket == "" {
		return nil, fmt.Errorf("remote %s does not name a bucket", remote)
	}

	svc, err := getClient(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("could not acquire S3 client instance: %w", err)
	}

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	collector := newObjectCollector()
	paginator := s3.NewListObjectsV2Paginator(svc, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, describeApiError(bucket, err)
		}

		log.Debugf("Retrieved %d objects from bucket %#q", len(page.Contents), bucket)

		for _, obj := range page.Contents {
			collector.add(strings.TrimPrefix(aws.ToString(obj.Key), prefix), obj)
		}
	}

	return collector.entries, nil
}

func describeApiError(bucket string, err error) error {
	var apiErr smithy.APIError

	if errors.As(err, &apiErr) {
		return fmt.Errorf("failed to list objects in bucket %#q: %s: %s", bucket, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}

	return fmt.Errorf("failed to list objects in bucket %#q: %w", bucket, err)
}

// objectCollector turns object keys into entries and synthesizes an entry for every directory prefix
type objectCollector struct {
	entries []fs.Entry
	dirs    map[string]bool
}

func newObjectCollector() *objectCollector {
	return &objectCollector{dirs: make(map[string]bool)}
}

func (o *objectCollector) add(key string, obj types.Object) {
	isDirMarker := strings.HasSuffix(key, fs.Separator)
	key = strings.Trim(key, fs.Separator)

	if key == "" {
		return
	}

	segments := strings.Split(key, fs.Separator)

	for i := 1; i < len(segments); i++ {
		o.addDir(strings.Join(segments[:i], fs.Separator))
	}

	if isDirMarker {
		o.addDir(key)
		return
	}

	o.entries = append(o.entries, fs.Entry{
		Path:    key,
		Name:    segments[len(segments)-1],
		Size:    aws.ToInt64(obj.Size),
		ModTime: aws.ToTime(obj.LastModified),
	})
}

func (o *objectCollector) addDir(path string) {
	if o.dirs[path] {
		return
	}

	o.dirs[path] = true
	o.entries = append(o.entries, fs.Entry{
		Path:  path,
		Name:  path[strings.LastIndex(path, fs.Separator)+1:],
		IsDir: true,
	})
}
