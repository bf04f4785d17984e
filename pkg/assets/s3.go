package assets

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// maxManifestSize bounds how much of an S3 object is read.
const maxManifestSize = 4 << 20

// ObjectGetter is the part of the S3 client LoadS3 needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client creates an S3 client for region. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; without
// them requests are sent anonymously, which works for public buckets.
func NewS3Client(region string) *s3.Client {
	opts := s3.Options{Region: region}
	if os.Getenv("AWS_ACCESS_KEY_ID") != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
					SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
					SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
					Source:          "environment",
				}, nil
			}))
	}
	return s3.New(opts)
}

// LoadS3 reads a manifest stored at bucket/key.
func LoadS3(ctx context.Context, client ObjectGetter, bucket, key string) (*Manifest, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E130").WithDetailf("could not get s3://%s/%s", bucket, key).Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxManifestSize+1))
	if err != nil {
		return nil, errors.New("E130").WithDetailf("could not read s3://%s/%s", bucket, key).Wrap(err)
	}
	if len(data) > maxManifestSize {
		return nil, errors.New("E130").WithDetailf("s3://%s/%s is larger than %d bytes", bucket, key, maxManifestSize)
	}
	return Parse(data)
}
