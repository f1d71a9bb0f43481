package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/diaryserver"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(diaryserver.New("/api/v1", logging.Discard()))
	t.Cleanup(ts.Close)

	c, err := NewHTTPClient(ts.URL+"/api/v1/", 5*time.Second)
	require.NoError(t, err)
	return c
}

// stub serves a fixed status and body for every request.
func stub(t *testing.T, status int, body string) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c, err := NewHTTPClient(ts.URL, time.Second)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", time.Second)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = NewHTTPClient("://", time.Second)
	assert.Error(t, err)

	c, err := NewHTTPClient(DefaultBaseURL, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/diary/abc", c.endpoint("diary", "abc"))
}

func TestCreateThenGet(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	id, err := c.CreateEntry(ctx, models.CreateEntryRequest{
		Title:        "Day 1",
		Text:         "Arrived",
		LocationName: models.OptionalString("Tokyo"),
		Images:       []string{base64.StdEncoding.EncodeToString([]byte("img"))},
		DateTime:     "2025-01-14T21:34:54.393Z",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := c.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Day 1", got.Title)
	assert.Equal(t, "Arrived", got.Text)
	require.NotNil(t, got.LocationName)
	assert.Equal(t, "Tokyo", *got.LocationName)
	assert.Len(t, got.Images, 1)

	all, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
}

func TestCreate_WithoutImages(t *testing.T) {
	c := newBackend(t)

	id, err := c.CreateEntry(context.Background(), models.CreateEntryRequest{
		Title: "T", Text: "X", DateTime: "2025-01-14T21:34:54.393Z",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestGet_UnknownIsNotFound(t *testing.T) {
	c := newBackend(t)

	_, err := c.GetEntry(context.Background(), "never-created")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncFailed)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList_Empty(t *testing.T) {
	c := newBackend(t)

	all, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestDecode_LenientAndStrict(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown fields and missing images", func(t *testing.T) {
		c := stub(t, http.StatusOK,
			`{"id":"1","title":"T","text":"X","dateTime":"2025-01-14T21:34:54.393Z","likes":3}`)
		got, err := c.GetEntry(ctx, "1")
		require.NoError(t, err)
		assert.NotNil(t, got.Images)
		assert.Empty(t, got.Images)
		assert.Nil(t, got.LocationName)
	})

	t.Run("missing required field", func(t *testing.T) {
		c := stub(t, http.StatusOK, `[{"id":"1","text":"X","dateTime":"2025-01-14T21:34:54.393Z"}]`)
		_, err := c.ListEntries(ctx)
		assert.ErrorIs(t, err, ErrSyncFailed)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("garbage body", func(t *testing.T) {
		c := stub(t, http.StatusOK, `<html>`)
		_, err := c.ListEntries(ctx)
		assert.ErrorIs(t, err, ErrSyncFailed)
	})
}

func TestFailures(t *testing.T) {
	ctx := context.Background()
	req := models.CreateEntryRequest{Title: "T", Text: "X", DateTime: "2025-01-14T21:34:54.393Z"}

	t.Run("server error", func(t *testing.T) {
		c := stub(t, http.StatusInternalServerError, `{"error":"boom"}`)
		_, err := c.CreateEntry(ctx, req)
		assert.ErrorIs(t, err, ErrSyncFailed)
		assert.NotErrorIs(t, err, common.ErrNotFound)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("empty id", func(t *testing.T) {
		c := stub(t, http.StatusCreated, `{"id":""}`)
		_, err := c.CreateEntry(ctx, req)
		assert.ErrorIs(t, err, ErrSyncFailed)
	})

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		c, err := NewHTTPClient(url, time.Second)
		require.NoError(t, err)
		_, err = c.ListEntries(ctx)
		assert.ErrorIs(t, err, ErrSyncFailed)
	})

	t.Run("cancelled", func(t *testing.T) {
		c := newBackend(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := c.ListEntries(cctx)
		assert.ErrorIs(t, err, ErrSyncFailed)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty get id", func(t *testing.T) {
		c := newBackend(t)
		_, err := c.GetEntry(ctx, "")
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})
}

func TestGet_IDStaysOneSegment(t *testing.T) {
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL+"/api/v1", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"a/b", "../../admin", "x?y=1"} {
		_, err := c.GetEntry(ctx, id)
		assert.ErrorIs(t, err, common.ErrNotFound, id)
	}
	assert.Equal(t, []string{
		"/api/v1/diary/a%2Fb",
		"/api/v1/diary/..%2F..%2Fadmin",
		"/api/v1/diary/x%3Fy=1",
	}, paths)

	for _, id := range []string{"", ".", ".."} {
		_, err := c.GetEntry(ctx, id)
		assert.ErrorIs(t, err, ErrSyncFailed, id)
		assert.ErrorIs(t, err, common.ErrInvalidArgument, id)
	}
	assert.Len(t, paths, 3)
}
