package storage

import "context"

type Storage interface {
	Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error)

	// UploadSource stores an image given a canonical upload source: an
	// http(s) URL (fetched by the storage layer) or a data URI (decoded
	// locally).
	UploadSource(ctx context.Context, source, prefix string) (*UploadResponse, error)
}

type UploadObject struct {
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	Url      string
	FileName string
}
