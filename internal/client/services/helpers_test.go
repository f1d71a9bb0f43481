package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/client"
	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/dmitrijs2005/travelbook/internal/timex"
	"github.com/stretchr/testify/require"
)

// 2025-01-14T21:34:54.393Z
var fixedNow = time.UnixMilli(1736890494393)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "travelbook.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fakeRemote struct {
	mu      sync.Mutex
	created []models.CreateEntryRequest
	id      string
	err     error

	entries []models.RemoteEntry
	listErr error
}

func (f *fakeRemote) ListEntries(ctx context.Context) ([]models.RemoteEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeRemote) GetEntry(ctx context.Context, id string) (*models.RemoteEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, errors.Join(client.ErrSyncFailed, common.ErrNotFound)
}

func (f *fakeRemote) CreateEntry(ctx context.Context, req models.CreateEntryRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	return f.id, f.err
}

func (f *fakeRemote) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type mapResolver map[string]string

func (m mapResolver) OpenBytes(ctx context.Context, uri string) ([]byte, error) {
	b, ok := m[uri]
	if !ok {
		return nil, errors.New("unreadable")
	}
	return []byte(b), nil
}

func newContainer(t *testing.T, remote client.Client, res mapResolver) (*Container, *store.Store) {
	t.Helper()
	s := openStore(t)
	c := NewContainer(Deps{
		Store:    s,
		Remote:   remote,
		Resolver: res,
		Clock:    timex.FixedClock{T: fixedNow},
		Logger:   logging.Discard(),
	})
	return c, s
}

func recv[T any](t *testing.T, ch <-chan []T) []T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "live query closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for live query")
		return nil
	}
}
