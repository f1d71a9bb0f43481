// Package store is the local entity store: trips, entries, images and the
// app-state singleton kept in SQLite, with live queries that re-emit after
// every committed change.
//
// Store wires the per-table repositories to one *sql.DB and to a watch.Hub.
// Single-call mutations notify their table once the statement has been
// committed; InTx runs several repository calls in one transaction and
// notifies only when it commits.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/travelbook/internal/client/migrations"
	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/repositories/appstate"
	"github.com/dmitrijs2005/travelbook/internal/client/repositories/entries"
	"github.com/dmitrijs2005/travelbook/internal/client/repositories/images"
	"github.com/dmitrijs2005/travelbook/internal/client/repositories/trips"
	"github.com/dmitrijs2005/travelbook/internal/client/watch"
	"github.com/dmitrijs2005/travelbook/internal/dbx"
	"github.com/dmitrijs2005/travelbook/internal/filex"
	"github.com/dmitrijs2005/travelbook/internal/logging"

	_ "modernc.org/sqlite"
)

// Repos groups the table repositories bound to one DBTX.
type Repos struct {
	Trips    trips.Repository
	Entries  entries.Repository
	Images   images.Repository
	AppState appstate.Repository
}

// NewRepos binds SQLite repositories to db, which may be a transaction.
func NewRepos(db dbx.DBTX) Repos {
	return Repos{
		Trips:    trips.NewSQLiteRepository(db),
		Entries:  entries.NewSQLiteRepository(db),
		Images:   images.NewSQLiteRepository(db),
		AppState: appstate.NewSQLiteRepository(db),
	}
}

var allTables = []watch.Table{watch.Trips, watch.Entries, watch.Images, watch.AppState}

type Store struct {
	db    *sql.DB
	hub   *watch.Hub
	log   logging.Logger
	repos Repos
}

// Open opens (creating if needed) the SQLite database at dsn and brings its
// schema up to date.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, dbx.Unavailable("failed to prepare database dir", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dbx.Unavailable("failed to open database", err)
	}
	// one connection serialises writers and keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, dbx.Unavailable("failed to migrate database", err)
	}

	return New(db, log), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:    db,
		hub:   watch.NewHub(),
		log:   log,
		repos: NewRepos(db),
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Reset drops all data and recreates the schema.
func (s *Store) Reset(ctx context.Context) error {
	if err := migrations.Reset(ctx, s.db); err != nil {
		return dbx.Unavailable("failed to reset database", err)
	}
	s.hub.Notify(allTables...)
	return nil
}

// InTx runs fn with repositories bound to a single transaction. When fn
// returns nil the transaction commits and the given tables are notified;
// otherwise nothing is written and nobody is notified.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error, tables ...watch.Table) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewRepos(tx))
	})
	if err != nil {
		return fmt.Errorf("transaction: %w", err)
	}
	s.hub.Notify(tables...)
	return nil
}

func (s *Store) liveErr(table watch.Table) func(error) {
	return func(err error) {
		s.log.Error(context.Background(), "live query failed", "table", string(table), "error", err)
	}
}

// notifyOnSuccess passes err through and notifies tables when it is nil.
func (s *Store) notifyOnSuccess(err error, tables ...watch.Table) error {
	if err == nil {
		s.hub.Notify(tables...)
	}
	return err
}

// Trips

// ListTrips streams every trip, ordered by id, until ctx is done.
func (s *Store) ListTrips(ctx context.Context) <-chan []models.Trip {
	return watch.Live(ctx, s.hub, s.repos.Trips.List, s.liveErr(watch.Trips), watch.Trips)
}

func (s *Store) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	return s.repos.Trips.GetByID(ctx, id)
}

func (s *Store) UpsertTrip(ctx context.Context, t *models.Trip) error {
	return s.notifyOnSuccess(s.repos.Trips.Upsert(ctx, t), watch.Trips)
}

func (s *Store) UpdateTrip(ctx context.Context, t *models.Trip) error {
	return s.notifyOnSuccess(s.repos.Trips.Update(ctx, t), watch.Trips)
}

// DeleteTrip removes the trip row only.
func (s *Store) DeleteTrip(ctx context.Context, id int64) error {
	return s.notifyOnSuccess(s.repos.Trips.Delete(ctx, id), watch.Trips)
}

// Entries

// ListEntriesByTrip streams the trip's entries until ctx is done.
func (s *Store) ListEntriesByTrip(ctx context.Context, tripID int64) <-chan []models.Entry {
	q := func(ctx context.Context) ([]models.Entry, error) {
		return s.repos.Entries.ListByTrip(ctx, tripID)
	}
	return watch.Live(ctx, s.hub, q, s.liveErr(watch.Entries), watch.Entries)
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*models.Entry, error) {
	return s.repos.Entries.GetByID(ctx, id)
}

func (s *Store) InsertEntry(ctx context.Context, e *models.Entry) (int64, error) {
	id, err := s.repos.Entries.Insert(ctx, e)
	return id, s.notifyOnSuccess(err, watch.Entries)
}

func (s *Store) UpdateEntry(ctx context.Context, e *models.Entry) error {
	return s.notifyOnSuccess(s.repos.Entries.Update(ctx, e), watch.Entries)
}

// DeleteEntry removes the entry row only.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	return s.notifyOnSuccess(s.repos.Entries.Delete(ctx, id), watch.Entries)
}

func (s *Store) DeleteEntriesByTrip(ctx context.Context, tripID int64) error {
	return s.notifyOnSuccess(s.repos.Entries.DeleteByTrip(ctx, tripID), watch.Entries)
}

// MarkPublished flips is_published to true. It never writes any other column.
func (s *Store) MarkPublished(ctx context.Context, id int64) error {
	return s.notifyOnSuccess(s.repos.Entries.MarkPublished(ctx, id), watch.Entries)
}

// Images

// ListImagesByEntry streams the entry's images until ctx is done.
func (s *Store) ListImagesByEntry(ctx context.Context, entryID int64) <-chan []models.Image {
	q := func(ctx context.Context) ([]models.Image, error) {
		return s.repos.Images.ListByEntry(ctx, entryID)
	}
	return watch.Live(ctx, s.hub, q, s.liveErr(watch.Images), watch.Images)
}

// ImagesByEntry reads the entry's images once.
func (s *Store) ImagesByEntry(ctx context.Context, entryID int64) ([]models.Image, error) {
	return s.repos.Images.ListByEntry(ctx, entryID)
}

func (s *Store) InsertImage(ctx context.Context, img *models.Image) (int64, error) {
	id, err := s.repos.Images.Insert(ctx, img)
	return id, s.notifyOnSuccess(err, watch.Images)
}

func (s *Store) DeleteImage(ctx context.Context, id int64) error {
	return s.notifyOnSuccess(s.repos.Images.Delete(ctx, id), watch.Images)
}

// DeleteImagesByTrip removes every image whose entry belongs to the trip.
func (s *Store) DeleteImagesByTrip(ctx context.Context, tripID int64) error {
	return s.notifyOnSuccess(s.repos.Images.DeleteByTrip(ctx, tripID), watch.Images)
}

// App state

// GetAppState returns (nil, nil) until the row has been written once.
func (s *Store) GetAppState(ctx context.Context) (*models.AppState, error) {
	return s.repos.AppState.Get(ctx)
}

func (s *Store) UpsertAppState(ctx context.Context, st *models.AppState) error {
	return s.notifyOnSuccess(s.repos.AppState.Upsert(ctx, st), watch.AppState)
}
