package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxImageBytes caps a single downloaded image.
const maxImageBytes = 32 << 20

// ErrTooLarge is returned for images bigger than maxImageBytes.
var ErrTooLarge = errors.New("image too large")

// readCapped reads r fully unless it holds more than maxImageBytes.
func readCapped(r io.Reader, uri string) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	if len(b) > maxImageBytes {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", uri, ErrTooLarge, maxImageBytes)
	}
	return b, nil
}

// HTTPResolver downloads http:// and https:// image URIs.
type HTTPResolver struct {
	client *http.Client
}

// NewHTTPResolver returns a resolver with its own client. A zero timeout
// leaves requests bounded only by the caller's context.
func NewHTTPResolver(timeout time.Duration) *HTTPResolver {
	return &HTTPResolver{client: &http.Client{Timeout: timeout}}
}

func (h *HTTPResolver) OpenBytes(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", uri, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get %s: %s; body: %s", uri, resp.Status, string(b))
	}

	return readCapped(resp.Body, uri)
}
