package utils

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString draws from the top-level math/rand source, which is
// safe for concurrent use; keys are built from per-request goroutines.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// BuildStorageKey derives a collision-resistant storage key for an uploaded
// file, namespaced under its event: "{event_id}/{unix_ms}-{random}{.ext}".
func BuildStorageKey(eventID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%d-%s%s", eventID, time.Now().UnixMilli(), GenerateRandomString(8), ext)
}
