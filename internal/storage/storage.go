// Package storage implements the document bucket holding applicant uploads
// (passport, CV, certificates). Documents are write-once: nothing in the
// service deletes or lists them, applications only reference them by path.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxDocumentSize is the per-document upload cap (5 MiB).
const MaxDocumentSize = 5 << 20

// ErrTooLarge is returned when an upload exceeds MaxDocumentSize. The partial
// write is removed before returning.
var ErrTooLarge = errors.New("document exceeds maximum size")

// DocumentStore persists uploaded applicant documents and returns the stored
// path to reference from an application row.
type DocumentStore interface {
	Save(ctx context.Context, field, filename string, r io.Reader) (string, error)
}

// DiskStore stores documents under a single directory on local disk.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &DiskStore{dir: dir}, nil
}

// Save writes the document under a name derived from the current timestamp
// and the form field key, plus a random suffix so concurrent submissions
// cannot collide. The original filename only contributes its extension.
func (s *DiskStore) Save(ctx context.Context, field, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%d_%s_%s%s", time.Now().UTC().UnixMilli(), field, uuid.NewString()[:8], ext)
	full := filepath.Join(s.dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	// read one byte past the cap so an exactly-full read is distinguishable
	// from an oversized one
	n, err := io.Copy(f, io.LimitReader(r, MaxDocumentSize+1))
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write document: %w", err)
	}
	if n > MaxDocumentSize {
		os.Remove(full)
		return "", ErrTooLarge
	}

	return name, nil
}
