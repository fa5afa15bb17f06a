package utils

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerateRandomStringLength(t *testing.T) {
	for _, length := range []int{1, 8, 32} {
		s := GenerateRandomString(length)
		if len(s) != length {
			t.Errorf("expected length %d, got %d (%q)", length, len(s), s)
		}
		for _, c := range s {
			if !strings.ContainsRune(charset, c) {
				t.Errorf("unexpected character %q in %q", c, s)
			}
		}
	}
}

func TestBuildStorageKeyNamespacesByEvent(t *testing.T) {
	const eventID = "7f4c2a10-2f1e-4a9b-9c3d-1a2b3c4d5e6f"

	key := BuildStorageKey(eventID, "beach.jpg")

	if !strings.HasPrefix(key, eventID+"/") {
		t.Errorf("key %q is not namespaced under event ID", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q did not keep the file extension", key)
	}
}

func TestBuildStorageKeyHandlesMissingExtension(t *testing.T) {
	key := BuildStorageKey("event-1", "photo")
	if strings.Contains(key, ".") {
		t.Errorf("key %q gained an extension it should not have", key)
	}
}

// Guests upload from independent request goroutines, so key generation must
// be safe to call concurrently. Run with -race to catch regressions.
func TestBuildStorageKeyConcurrent(t *testing.T) {
	const workers = 8
	const perWorker = 20

	keys := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				keys <- BuildStorageKey("event-1", "photo.jpg")
			}
		}()
	}
	wg.Wait()
	close(keys)

	seen := make(map[string]bool)
	for key := range keys {
		if !strings.HasPrefix(key, "event-1/") || !strings.HasSuffix(key, ".jpg") {
			t.Errorf("malformed key %q", key)
		}
		if seen[key] {
			t.Errorf("duplicate key generated concurrently: %q", key)
		}
		seen[key] = true
	}
}

func TestBuildStorageKeyAvoidsCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := BuildStorageKey("event-1", "same-name.png")
		if seen[key] {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = true
	}
}
