// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Object is a stored blob with its content type.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore implements [ObjectStore] in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

func (store *MemoryStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return fmt.Errorf("storage: read body for %s: %w", key, err)
	}
	if int64(buf.Len()) != size {
		return fmt.Errorf("storage: %s declared %d bytes, got %d", key, size, buf.Len())
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.objects[key] = Object{ContentType: contentType, Data: buf.Bytes()}
	return nil
}

// Get returns the object stored under key.
func (store *MemoryStore) Get(key string) (Object, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	object, ok := store.objects[key]
	return object, ok
}

// Keys lists every stored key.
func (store *MemoryStore) Keys() []string {
	store.mu.RLock()
	defer store.mu.RUnlock()
	keys := make([]string, 0, len(store.objects))
	for key := range store.objects {
		keys = append(keys, key)
	}
	return keys
}
