package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"brightsite/config"
)

// LocalStorage implements StorageService on the local filesystem. Files land
// under the configured upload directory and are served from the upload base
// path by the HTTP layer.
type LocalStorage struct {
	dir  string
	base string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage() (*LocalStorage, error) {
	cfg := config.AppConfig
	if err := os.MkdirAll(cfg.LocalUploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: cfg.LocalUploadDir, base: strings.TrimSuffix(cfg.LocalUploadBase, "/")}, nil
}

// UploadFile copies the file into destFolder under the upload directory with
// a random name, keeping the original extension.
func (s *LocalStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error) {
	src, err := os.Open(localFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("failed to generate file name: %w", err)
	}
	name := hex.EncodeToString(buf[:]) + filepath.Ext(localFilePath)

	// publicID stays slash-separated regardless of the host OS.
	publicID := path.Join(destFolder, name)
	destPath := filepath.Join(s.dir, filepath.FromSlash(publicID))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination folder: %w", err)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	url, _ := s.GetDownloadURL(ctx, publicID)
	return &UploadResult{PublicID: publicID, URL: url}, nil
}

// DeleteFile removes the file; a missing file is not an error.
func (s *LocalStorage) DeleteFile(ctx context.Context, publicID string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(publicID)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetDownloadURL returns the serving path under the upload base.
func (s *LocalStorage) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	return s.base + "/" + publicID, nil
}
