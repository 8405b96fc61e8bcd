// Package storage persists uploaded property images and hands back the public URL
// they are served from.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// objectName keeps the client's extension and replaces the rest with a random id.
func objectName(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}
