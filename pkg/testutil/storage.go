package testutil

import (
	"context"

	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc       func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	UploadSourceFunc func(context.Context, string, string) (*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) UploadSource(
	ctx context.Context, source, prefix string,
) (*storage.UploadResponse, error) {
	if m.UploadSourceFunc != nil {
		return m.UploadSourceFunc(ctx, source, prefix)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}
