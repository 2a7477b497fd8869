// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage provides object storage for visitor-supplied files.

Two implementations satisfy [ObjectStore]:

  - S3Store: AWS S3 or any S3-compatible endpoint (Cloudflare R2, MinIO).
  - MemoryStore: a process-local map used by the memory driver and tests.

Keys are opaque slash-separated paths chosen by the caller.
*/
package storage

import (
	"context"
	"io"
)

// ObjectStore writes immutable objects.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}
