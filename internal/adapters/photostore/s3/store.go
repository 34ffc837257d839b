package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// maxBuffered limita lo que se copia a memoria cuando el body no es seekable.
const maxBuffered = 20 << 20

// Store implementa storage.PhotoStore sobre un bucket S3 (o compatible, p.ej. MinIO).
// La URL pública se arma con BaseURL + Bucket + "/" + key.
type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// Config son los parámetros explícitos; sin credenciales se usa la cadena
// default de AWS (env, shared config, IAM role).
type Config struct {
	BaseURL   string // p.ej. "https://s3-us-west-1.amazonaws.com/"
	Bucket    string
	Region    string
	Endpoint  string // opcional, para MinIO / localstack
	PathStyle bool

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// HTTPClient reemplaza el transport (tests).
	HTTPClient aws.HTTPClient
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("s3 base url required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-west-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})

	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Store{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

// URL es la dirección pública del objeto.
func (s *Store) URL(key string) string {
	return s.baseURL + s.bucket + "/" + key
}

func (s *Store) Store(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("s3: empty key")
	}

	// El SDK necesita poder rebobinar el body para firmar y reintentar.
	rs, ok := body.(io.ReadSeeker)
	if !ok {
		buf, err := io.ReadAll(io.LimitReader(body, maxBuffered+1))
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		if len(buf) > maxBuffered {
			return "", fmt.Errorf("upload larger than %d bytes", maxBuffered)
		}
		rs = bytes.NewReader(buf)
	}

	input := &s3.PutObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key), Body: rs}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.URL(key), nil
}
