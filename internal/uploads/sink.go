// Package uploads stores media files uploaded through the admin panel and
// serves them back on the public /uploads route.
package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrNotFound = errors.New("upload not found")

// File describes a stored upload.
type File struct {
	Name        string
	Size        int64
	ContentType string
}

// Sink is the storage backend for uploaded media.
type Sink interface {
	Store(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, *File, error)
	List(ctx context.Context) ([]File, error)
}

// SanitizeName reduces an uploaded filename to a safe flat object key:
// path components are stripped and anything outside [a-zA-Z0-9._-] becomes
// an underscore. The empty result means the name is unusable.
func SanitizeName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" || strings.Trim(out, "._-") == "" {
		return ""
	}
	return out
}
