package storage

import (
	"fmt"

	"brightsite/config"
)

// New selects the storage backend from configuration: "cloudinary" for the
// hosted CDN, anything else falls back to local disk.
func New() (StorageService, error) {
	switch config.AppConfig.StorageBackend {
	case "cloudinary":
		return NewCloudinaryStorage()
	case "", "local":
		return NewLocalStorage()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.AppConfig.StorageBackend)
	}
}
