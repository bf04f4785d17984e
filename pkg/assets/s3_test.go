package assets

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

type fakeObjectGetter struct {
	objects map[string][]byte
	err     error

	bucket string
	key    string
}

func (f *fakeObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[f.bucket+"/"+f.key]
	if !ok {
		return nil, stderrors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestLoadS3(t *testing.T) {
	client := &fakeObjectGetter{objects: map[string][]byte{
		"site-assets/build/asset-manifest.json": []byte(`{"files": {"main.js": "/static/js/main.77.js"}}`),
	}}

	m, err := LoadS3(context.Background(), client, "site-assets", "build/asset-manifest.json")
	if err != nil {
		t.Fatalf("LoadS3() error = %v", err)
	}
	if client.bucket != "site-assets" || client.key != "build/asset-manifest.json" {
		t.Errorf("requested %s/%s", client.bucket, client.key)
	}
	if got := m.Resolve("main.js"); got != "/static/js/main.77.js" {
		t.Errorf("Resolve(main.js) = %q", got)
	}
}

func TestLoadS3Errors(t *testing.T) {
	boom := stderrors.New("access denied")

	tests := []struct {
		name   string
		client *fakeObjectGetter
	}{
		{"get fails", &fakeObjectGetter{err: boom}},
		{"missing key", &fakeObjectGetter{objects: map[string][]byte{}}},
		{"bad json", &fakeObjectGetter{objects: map[string][]byte{"b/k": []byte("{")}}},
		{"too large", &fakeObjectGetter{objects: map[string][]byte{
			"b/k": []byte(`{"x":"` + strings.Repeat("a", maxManifestSize) + `"}`),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadS3(context.Background(), tt.client, "b", "k")
			if err == nil {
				t.Fatal("LoadS3() error = nil, want error")
			}
			if code := errors.CodeOf(err); code != "E130" {
				t.Errorf("code = %q, want E130", code)
			}
		})
	}

	_, err := LoadS3(context.Background(), &fakeObjectGetter{err: boom}, "b", "k")
	if !stderrors.Is(err, boom) {
		t.Errorf("LoadS3() error should wrap the client error, got %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	client := NewS3Client("eu-west-1")
	if client == nil {
		t.Fatal("NewS3Client() = nil")
	}
	if got := client.Options().Region; got != "eu-west-1" {
		t.Errorf("Region = %q, want eu-west-1", got)
	}
	creds, err := client.Options().Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Errorf("AccessKeyID = %q", creds.AccessKeyID)
	}
}
