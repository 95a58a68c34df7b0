// Package storage fetches document templates, either from the S3 bucket the
// API stores them in or over plain HTTP.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	clientconfig "github.com/dmitrijs2005/plana/internal/client/config"
	"github.com/dmitrijs2005/plana/internal/logging"
)

const maxTemplateSize = 32 << 20

var ErrTooLarge = errors.New("template too large")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// TemplateFetcher returns the content of the template at location, which is
// the pathTemplate value of a document.
type TemplateFetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// New picks the S3 fetcher when a bucket is configured.
func New(ctx context.Context, cfg *clientconfig.Config, logger logging.Logger) (TemplateFetcher, error) {
	if cfg.S3.Enabled() {
		return NewS3Fetcher(ctx, cfg.S3, logger)
	}
	return NewHTTPFetcher(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, logger), nil
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Fetcher struct {
	bucket string
	client objectGetter
	logger logging.Logger
}

func NewS3Fetcher(ctx context.Context, cfg clientconfig.S3Config, logger logging.Logger) (*S3Fetcher, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Fetcher{bucket: cfg.Bucket, client: client, logger: logging.OrNop(logger)}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	key := ObjectKey(location, f.bucket)
	f.logger.Debug(ctx, "fetching template", "bucket", f.bucket, "key", key)

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", f.bucket, key, err)
	}
	defer out.Body.Close()
	return readLimited(out.Body)
}

// ObjectKey extracts the object key from a template location. Locations
// may be bare keys or URLs, with or without the bucket as first segment.
func ObjectKey(location, bucket string) string {
	key := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		key = u.Path
	}
	key = strings.TrimPrefix(key, "/")
	return strings.TrimPrefix(key, bucket+"/")
}

// HTTPFetcher downloads templates by URL. Relative locations are resolved
// against the API base URL.
type HTTPFetcher struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

func NewHTTPFetcher(baseURL string, hc *http.Client, logger logging.Logger) *HTTPFetcher {
	return &HTTPFetcher{baseURL: strings.TrimRight(baseURL, "/"), http: hc, logger: logging.OrNop(logger)}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	target := location
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		target = f.baseURL + "/" + strings.TrimPrefix(location, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: %s", target, resp.Status)
	}
	f.logger.Debug(ctx, "template downloaded", "url", target)
	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxTemplateSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxTemplateSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
