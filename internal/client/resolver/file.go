package resolver

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileResolver reads file:// URIs and bare paths from the local disk.
// Relative paths are resolved against Root when it is set.
type FileResolver struct {
	Root string
}

func (f FileResolver) OpenBytes(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.path(uri)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func (f FileResolver) path(uri string) (string, error) {
	path := uri
	if strings.HasPrefix(strings.ToLower(uri), "file:") {
		u, err := url.Parse(uri)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", uri, err)
		}
		path = u.Path
		if u.Opaque != "" {
			// file:relative/path
			path = u.Opaque
		}
	}
	if path == "" {
		return "", fmt.Errorf("empty path in %q", uri)
	}
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}
	return filepath.Clean(path), nil
}
