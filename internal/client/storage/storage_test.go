package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	clientconfig "github.com/dmitrijs2005/plana/internal/client/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	bucket, key string
	body        string
	err         error
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func stubAWS(t *testing.T, getter *fakeGetter, loadErr error) *s3.Options {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var opts s3.Options
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-3", lo.Region)
		return aws.Config{}, loadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		for _, fn := range optFns {
			fn(&opts)
		}
		return getter
	}
	return &opts
}

var s3cfg = clientconfig.S3Config{
	Bucket:       "plana",
	Region:       "eu-west-3",
	BaseEndpoint: "http://127.0.0.1:9000",
	AccessKey:    "minioadmin",
	SecretKey:    "minioadmin",
}

func TestS3Fetcher_Fetch(t *testing.T) {
	getter := &fakeGetter{body: "%PDF-1.4 template"}
	opts := stubAWS(t, getter, nil)

	f, err := NewS3Fetcher(context.Background(), s3cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	data, err := f.Fetch(context.Background(), "http://127.0.0.1:9000/plana/documents/charter.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 template", string(data))
	assert.Equal(t, "plana", getter.bucket)
	assert.Equal(t, "documents/charter.pdf", getter.key)
}

func TestS3Fetcher_Errors(t *testing.T) {
	stubAWS(t, &fakeGetter{}, errors.New("load-fail"))
	_, err := NewS3Fetcher(context.Background(), s3cfg, nil)
	require.EqualError(t, err, "load-fail")

	getter := &fakeGetter{err: errors.New("NoSuchKey")}
	stubAWS(t, getter, nil)
	f, err := NewS3Fetcher(context.Background(), s3cfg, nil)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://plana/missing.pdf")
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "a/b.pdf", ObjectKey("a/b.pdf", "plana"))
	assert.Equal(t, "a/b.pdf", ObjectKey("/plana/a/b.pdf", "plana"))
	assert.Equal(t, "a/b.pdf", ObjectKey("https://s3.example.org/plana/a/b.pdf", "plana"))
	assert.Equal(t, "other/a.pdf", ObjectKey("https://s3.example.org/other/a.pdf", "plana"))
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/media/templates/{name}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "name") != "charter.odt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("odt-bytes"))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/", srv.Client(), nil)

	data, err := f.Fetch(context.Background(), "/media/templates/charter.odt")
	require.NoError(t, err)
	assert.Equal(t, "odt-bytes", string(data))

	data, err = f.Fetch(context.Background(), srv.URL+"/media/templates/charter.odt")
	require.NoError(t, err)
	assert.Equal(t, "odt-bytes", string(data))

	_, err = f.Fetch(context.Background(), "media/templates/missing.odt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestReadLimited(t *testing.T) {
	_, err := readLimited(strings.NewReader(strings.Repeat("x", maxTemplateSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNew_PicksFetcher(t *testing.T) {
	cfg := &clientconfig.Config{}
	cfg.LoadDefaults()

	f, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	stubAWS(t, &fakeGetter{}, nil)
	cfg.S3 = s3cfg
	f, err = New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &S3Fetcher{}, f)
}
