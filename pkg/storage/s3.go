package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/finds-lab/backend/config"
	"github.com/google/uuid"
)

type s3Storage struct {
	uploader   *s3manager.Uploader
	httpClient *http.Client
	cfg        config.S3Configs
}

func NewS3Storage(cfg config.S3Configs) Storage {
	session, _ := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})

	return &s3Storage{
		uploader:   s3manager.NewUploader(session),
		httpClient: http.DefaultClient,
		cfg:        cfg,
	}
}

func (s *s3Storage) generateUploadURL(object *UploadObject) *UploadResponse {
	id := uuid.NewString()
	fileName := fmt.Sprintf("%s/%s-%s", object.Prefix, id, object.FileName)

	return &UploadResponse{
		Url:      fmt.Sprintf("%s/%s/%s", s.cfg.PublicEndpoint, s.cfg.Bucket, fileName),
		FileName: fileName,
	}
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	resp := s.generateUploadURL(object)
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(resp.FileName),
		Body:        bytes.NewReader(object.Data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(object.Mime),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w, bucket %s, key %s", err, s.cfg.Bucket, resp.FileName)
	}

	return resp, nil
}

func (s *s3Storage) UploadSource(ctx context.Context, source, prefix string) (*UploadResponse, error) {
	var object *UploadObject
	var err error

	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		object, err = s.fetchURL(ctx, source)
	case strings.HasPrefix(source, "data:"):
		object, err = decodeDataURI(source)
	default:
		err = fmt.Errorf("unsupported upload source")
	}
	if err != nil {
		return nil, err
	}

	object.Prefix = prefix
	return s.Upload(ctx, object)
}

func (s *s3Storage) fetchURL(ctx context.Context, url string) (*UploadObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read image: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	return &UploadObject{
		FileName: fileNameForMime(mime),
		Mime:     mime,
		Data:     data,
	}, nil
}

func decodeDataURI(source string) (*UploadObject, error) {
	if !strings.HasPrefix(source, "data:") {
		return nil, fmt.Errorf("not a data URI")
	}

	meta, payload, found := strings.Cut(strings.TrimPrefix(source, "data:"), ",")
	if !found {
		return nil, fmt.Errorf("malformed data URI")
	}

	mime, _, _ := strings.Cut(meta, ";")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	return &UploadObject{
		FileName: fileNameForMime(mime),
		Mime:     mime,
		Data:     data,
	}, nil
}

func fileNameForMime(mime string) string {
	switch mime {
	case "image/jpeg":
		return "image.jpg"
	case "image/png":
		return "image.png"
	case "image/gif":
		return "image.gif"
	case "image/webp":
		return "image.webp"
	default:
		return "image"
	}
}
