package storage

import (
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

type StorageService interface {
	Upload(key string, reader io.Reader) error
	Delete(key string) error
	List(prefix string) ([]ObjectInfo, error)
	// PublicURL maps a storage key to a fetchable URL. Deterministic and
	// non-expiring: the same key always yields the same URL.
	PublicURL(key string) string
}
