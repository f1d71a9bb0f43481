// Package resolver reads the bytes behind an image URI. Entries store only
// references; the bytes are fetched at publish time.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedScheme is returned for URIs no resolver is registered for.
var ErrUnsupportedScheme = errors.New("unsupported uri scheme")

// Resolver opens the content of a URI.
type Resolver interface {
	OpenBytes(ctx context.Context, uri string) ([]byte, error)
}

// Mux dispatches to a Resolver by URI scheme. URIs without a scheme are
// treated as "file".
type Mux struct {
	byScheme map[string]Resolver
}

func NewMux() *Mux {
	return &Mux{byScheme: make(map[string]Resolver)}
}

// Handle registers r for scheme, replacing any previous registration.
func (m *Mux) Handle(scheme string, r Resolver) {
	m.byScheme[strings.ToLower(scheme)] = r
}

func (m *Mux) OpenBytes(ctx context.Context, uri string) ([]byte, error) {
	scheme := Scheme(uri)
	r, ok := m.byScheme[scheme]
	if !ok {
		return nil, fmt.Errorf("%q: %w", scheme, ErrUnsupportedScheme)
	}
	return r.OpenBytes(ctx, uri)
}

// Scheme returns the lower-cased scheme of uri, or "file" when it has none.
func Scheme(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// single letters are Windows drive names, not schemes
		return "file"
	}
	return strings.ToLower(u.Scheme)
}
