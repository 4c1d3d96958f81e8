package ports

import (
	"context"
	"time"
)

// BlobStorage : объектное хранилище готовых PDF
type BlobStorage interface {
	UploadObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
