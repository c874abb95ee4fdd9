// Package objectstore работает с S3-совместимым хранилищем (Cloudflare R2):
// выдаёт подписанные ссылки на PUT, загружает файлы с серверными ключами
// и строит публичные адреса объектов.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/magazine-admin/internal/config"
)

// DefaultExpiry срок жизни подписанной ссылки по умолчанию.
const DefaultExpiry = time.Minute

// unsignedPayload тело PUT по подписанной ссылке не входит в подпись.
const unsignedPayload = "UNSIGNED-PAYLOAD"

// Store клиент хранилища для одного бакета.
type Store struct {
	client     *s3.Client
	signer     *v4.Signer
	creds      aws.CredentialsProvider
	endpoint   string
	region     string
	bucket     string
	publicBase string
	expiry     time.Duration
	now        func() time.Time
}

// New создаёт клиента по настройкам. Секреты приходят только из конфига.
func New(cfg config.ObjectStorage) *Store {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	client := s3.New(s3.Options{
		Region:                     region,
		BaseEndpoint:               aws.String(cfg.ResolvedEndpoint()),
		Credentials:                creds,
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})

	expiry := cfg.SignedURLExpiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		client: client,
		signer: v4.NewSigner(func(o *v4.SignerOptions) {
			o.DisableURIPathEscaping = true
		}),
		creds:      creds,
		endpoint:   strings.TrimRight(cfg.ResolvedEndpoint(), "/"),
		region:     region,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		expiry:     expiry,
		now:        time.Now,
	}
}

// PresignPut выдаёт ссылку на PUT одного объекта. Content-Type входит в
// подписанные заголовки: загрузка с другим типом отклоняется хранилищем.
func (s *Store) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	const op = "objectstore.PresignPut"

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	u.Path = "/" + s.bucket + "/" + strings.TrimLeft(key, "/")
	u.RawPath = "/" + s.bucket + "/" + escapeKey(strings.TrimLeft(key, "/"))
	u.RawQuery = url.Values{"X-Amz-Expires": {strconv.Itoa(int(s.expiry.Seconds()))}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	creds, err := s.creds.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	signed, _, err := s.signer.PresignHTTP(ctx, creds, req, unsignedPayload, "s3", s.region, s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Put загружает объект и возвращает его публичный адрес. Для загрузки по
// HTTP без TLS body должен поддерживать Seek.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	const op = "objectstore.Put"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.PublicURL(key), nil
}

// PublicURL публичный адрес объекта.
func (s *Store) PublicURL(key string) string {
	return s.publicBase + "/" + strings.TrimLeft(key, "/")
}

// Ping проверяет доступ к бакету.
func (s *Store) Ping(ctx context.Context) error {
	const op = "objectstore.Ping"
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
