package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/watch"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "travelbook.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func next[T any](t *testing.T, ch <-chan []T) []T {
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

// nextMatching reads snapshots until one satisfies ok.
func nextMatching[T any](t *testing.T, ch <-chan []T, ok func([]T) bool) []T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case v, open := <-ch:
			require.True(t, open, "live query closed")
			if ok(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching snapshot")
			return nil
		}
	}
}

type fixture struct {
	trip   models.Trip
	entry  int64
	images []int64
}

func seed(t *testing.T, s *Store, name string) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{trip: models.Trip{Name: name, CreatedAt: 1736890494393}}
	require.NoError(t, s.UpsertTrip(ctx, &f.trip))

	id, err := s.InsertEntry(ctx, &models.Entry{
		TripID: f.trip.ID, Title: name + " day 1", Text: "walked", Timestamp: 1736890494393,
	})
	require.NoError(t, err)
	f.entry = id

	for _, uri := range []string{"file:///a.jpg", "file:///b.jpg"} {
		imgID, err := s.InsertImage(ctx, &models.Image{EntryID: id, ImageURI: uri})
		require.NoError(t, err)
		f.images = append(f.images, imgID)
	}
	return f
}

func TestOpen_CreatesParentDirAndSchema(t *testing.T) {
	s := openStore(t)

	got, err := s.GetTrip(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:", logging.Discard())
	require.NoError(t, err)
	defer s.Close()

	tr := &models.Trip{Name: "Kyoto"}
	require.NoError(t, s.UpsertTrip(context.Background(), tr))
	got, err := s.GetTrip(context.Background(), tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kyoto", got.Name)
}

func TestListTrips_ReEmitsAfterWrites(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live := s.ListTrips(ctx)
	assert.Empty(t, next(t, live))

	tr := &models.Trip{Name: "Japan", CreatedAt: 1}
	require.NoError(t, s.UpsertTrip(ctx, tr))
	got := nextMatching(t, live, func(v []models.Trip) bool { return len(v) == 1 })
	assert.Equal(t, "Japan", got[0].Name)

	tr.Name = "Japan 2025"
	require.NoError(t, s.UpdateTrip(ctx, tr))
	got = nextMatching(t, live, func(v []models.Trip) bool { return len(v) == 1 && v[0].Name == "Japan 2025" })
	assert.Equal(t, tr.ID, got[0].ID)

	require.NoError(t, s.DeleteTrip(ctx, tr.ID))
	nextMatching(t, live, func(v []models.Trip) bool { return len(v) == 0 })
}

func TestListTrips_ClosesOnCancel(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	live := s.ListTrips(ctx)
	next(t, live)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-live:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
}

func TestListEntriesByTrip_OnlyThatTrip(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := seed(t, s, "A")
	b := seed(t, s, "B")

	got := next(t, s.ListEntriesByTrip(ctx, a.trip.ID))
	require.Len(t, got, 1)
	assert.Equal(t, a.entry, got[0].ID)
	assert.NotEqual(t, b.entry, got[0].ID)
}

func TestListImagesByEntry_ReEmitsOnInsertAndDelete(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := seed(t, s, "A")
	live := s.ListImagesByEntry(ctx, f.entry)
	require.Len(t, next(t, live), 2)

	_, err := s.InsertImage(ctx, &models.Image{EntryID: f.entry, ImageURI: "file:///c.jpg"})
	require.NoError(t, err)
	nextMatching(t, live, func(v []models.Image) bool { return len(v) == 3 })

	require.NoError(t, s.DeleteImage(ctx, f.images[0]))
	got := nextMatching(t, live, func(v []models.Image) bool { return len(v) == 2 })
	assert.Equal(t, f.images[1], got[0].ID)
}

func TestCascade_InTx(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	f := seed(t, s, "A")
	other := seed(t, s, "B")

	err := s.InTx(ctx, func(ctx context.Context, r Repos) error {
		if err := r.Images.DeleteByTrip(ctx, f.trip.ID); err != nil {
			return err
		}
		if err := r.Entries.DeleteByTrip(ctx, f.trip.ID); err != nil {
			return err
		}
		return r.Trips.Delete(ctx, f.trip.ID)
	}, watch.Trips, watch.Entries, watch.Images)
	require.NoError(t, err)

	trip, err := s.GetTrip(ctx, f.trip.ID)
	require.NoError(t, err)
	assert.Nil(t, trip)

	entry, err := s.GetEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.Nil(t, entry)

	imgs, err := s.ImagesByEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.Empty(t, imgs)

	imgs, err = s.ImagesByEntry(ctx, other.entry)
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
}

func TestInTx_RollsBackEveryStep(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := seed(t, s, "A")
	live := s.ListTrips(ctx)
	require.Len(t, next(t, live), 1)

	boom := errors.New("boom")
	err := s.InTx(ctx, func(ctx context.Context, r Repos) error {
		require.NoError(t, r.Images.DeleteByTrip(ctx, f.trip.ID))
		require.NoError(t, r.Entries.DeleteByTrip(ctx, f.trip.ID))
		return boom
	}, watch.Trips, watch.Entries, watch.Images)
	require.ErrorIs(t, err, boom)

	imgs, err := s.ImagesByEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.Len(t, imgs, 2)

	entry, err := s.GetEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.NotNil(t, entry)

	// failed transactions do not notify
	select {
	case v := <-live:
		t.Fatalf("unexpected snapshot %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteImagesByTrip_LeavesEntries(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	f := seed(t, s, "A")
	require.NoError(t, s.DeleteImagesByTrip(ctx, f.trip.ID))

	imgs, err := s.ImagesByEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.Empty(t, imgs)

	require.NoError(t, s.DeleteEntriesByTrip(ctx, f.trip.ID))
	e, err := s.GetEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.Nil(t, e)

	tr, err := s.GetTrip(ctx, f.trip.ID)
	require.NoError(t, err)
	assert.NotNil(t, tr)
}

func TestMarkPublished_IsMonotonic(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	f := seed(t, s, "A")
	require.NoError(t, s.MarkPublished(ctx, f.entry))

	e, err := s.GetEntry(ctx, f.entry)
	require.NoError(t, err)
	require.True(t, e.IsPublished)

	e.IsPublished = false
	e.Title = "changed"
	require.NoError(t, s.UpdateEntry(ctx, e))

	got, err := s.GetEntry(ctx, f.entry)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.Equal(t, "changed", got.Title)
}

func TestMarkPublished_Missing(t *testing.T) {
	s := openStore(t)
	err := s.MarkPublished(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAppState(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	st, err := s.GetAppState(ctx)
	require.NoError(t, err)
	assert.Nil(t, st)

	require.NoError(t, s.UpsertAppState(ctx, &models.AppState{ID: 9, IsFirstLaunch: false}))

	st, err = s.GetAppState(ctx)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, models.AppStateID, st.ID)
	assert.False(t, st.IsFirstLaunch)
}

func TestReset_DropsData(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	f := seed(t, s, "A")
	require.NoError(t, s.Reset(ctx))

	tr, err := s.GetTrip(ctx, f.trip.ID)
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestStoreUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db, logging.Discard())
	ctx := context.Background()
	diskFull := errors.New("disk I/O error")

	mock.ExpectQuery("SELECT id, name, created_at FROM trips").WillReturnError(diskFull)
	_, err = s.GetTrip(ctx, 1)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.ErrorIs(t, err, diskFull)

	mock.ExpectExec("INSERT INTO trips").WillReturnError(diskFull)
	err = s.UpsertTrip(ctx, &models.Trip{Name: "x"})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)

	mock.ExpectBegin().WillReturnError(diskFull)
	err = s.InTx(ctx, func(ctx context.Context, r Repos) error { return nil })
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.ErrorIs(t, err, diskFull)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(diskFull)
	err = s.InTx(ctx, func(ctx context.Context, r Repos) error { return nil })
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveQuery_FailureEmitsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock.ExpectQuery("SELECT id, name, created_at FROM trips").WillReturnError(errors.New("corrupt"))

	got := next(t, s.ListTrips(ctx))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
