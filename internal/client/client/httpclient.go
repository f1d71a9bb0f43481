package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/common"
)

// DefaultBaseURL is the public diary service.
const DefaultBaseURL = "https://travel-diary.moetz.dev/api/v1"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 32 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

// NewHTTPClient returns a client for the service rooted at baseURL. A zero
// timeout leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: %w", baseURL, common.ErrInvalidArgument)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	return c.baseURL.JoinPath(parts...).String()
}

func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.RemoteEntry, error) {
	var wire []wireEntry
	if err := c.do(ctx, http.MethodGet, c.endpoint("diary"), nil, &wire); err != nil {
		return nil, err
	}

	entries := make([]models.RemoteEntry, 0, len(wire))
	for i, w := range wire {
		e, err := w.toModel()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrSyncFailed, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (c *HTTPClient) GetEntry(ctx context.Context, id string) (*models.RemoteEntry, error) {
	if id == "" || id == "." || id == ".." {
		return nil, fmt.Errorf("%w: invalid id %q: %w", ErrSyncFailed, id, common.ErrInvalidArgument)
	}

	var wire wireEntry
	// escaped so the id stays one path segment
	if err := c.do(ctx, http.MethodGet, c.endpoint("diary", url.PathEscape(id)), nil, &wire); err != nil {
		return nil, err
	}

	e, err := wire.toModel()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}
	return &e, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, req models.CreateEntryRequest) (string, error) {
	if req.Images == nil {
		req.Images = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrSyncFailed, err)
	}

	var resp models.CreatedResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint("diary"), body, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: server returned an empty id", ErrSyncFailed)
	}
	return resp.ID, nil
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrSyncFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrSyncFailed, method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrSyncFailed, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s: %w", ErrSyncFailed, method, endpoint, common.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: status %d: %s",
			ErrSyncFailed, method, endpoint, resp.StatusCode, snippet(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrSyncFailed, err)
	}
	return nil
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// wireEntry mirrors RemoteEntry with pointers so that missing required
// fields can be told apart from empty ones.
type wireEntry struct {
	ID           *string              `json:"id"`
	Title        *string              `json:"title"`
	Text         *string              `json:"text"`
	Images       []models.RemoteImage `json:"images"`
	LocationName *string              `json:"locationName"`
	DateTime     *string              `json:"dateTime"`
}

func (w wireEntry) toModel() (models.RemoteEntry, error) {
	var missing []string
	if w.ID == nil {
		missing = append(missing, "id")
	}
	if w.Title == nil {
		missing = append(missing, "title")
	}
	if w.Text == nil {
		missing = append(missing, "text")
	}
	if w.DateTime == nil {
		missing = append(missing, "dateTime")
	}
	if len(missing) > 0 {
		return models.RemoteEntry{}, fmt.Errorf("missing fields %s", strings.Join(missing, ", "))
	}

	images := w.Images
	if images == nil {
		images = []models.RemoteImage{}
	}
	return models.RemoteEntry{
		ID:           *w.ID,
		Title:        *w.Title,
		Text:         *w.Text,
		Images:       images,
		LocationName: w.LocationName,
		DateTime:     *w.DateTime,
	}, nil
}
