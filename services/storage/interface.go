package storage

import "context"

// UploadResult identifies a stored file: the backend-specific ID used for
// deletion plus the URL served to site visitors.
type UploadResult struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// StorageService defines the interface for image storage operations. Content
// handlers upload through it and delete the old image when one is replaced.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, publicID string) (string, error)
}
