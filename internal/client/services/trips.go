// Package services is the layer the UI talks to. It enforces the publish
// policy and runs multi-table work such as cascading deletes in one
// transaction.
//
// Store writes started here run to completion even if the caller's context
// is cancelled; only network calls follow the caller's cancellation.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
	"github.com/dmitrijs2005/travelbook/internal/client/watch"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/dmitrijs2005/travelbook/internal/timex"
)

// TripService manages trips.
type TripService interface {
	// Trips streams all trips until ctx is done.
	Trips(ctx context.Context) <-chan []models.Trip
	Get(ctx context.Context, id int64) (*models.Trip, error)
	// Add creates a trip stamped with the current time.
	Add(ctx context.Context, name string) (*models.Trip, error)
	// Update renames the trip.
	Update(ctx context.Context, t *models.Trip) error
	// Delete removes the trip row alone.
	Delete(ctx context.Context, id int64) error
	// DeleteWithEntries removes the trip's images, then its entries, then
	// the trip, atomically.
	DeleteWithEntries(ctx context.Context, id int64) error
}

type tripService struct {
	store *store.Store
	clock timex.Clock
	log   logging.Logger
}

func NewTripService(s *store.Store, clock timex.Clock, log logging.Logger) TripService {
	return &tripService{store: s, clock: clock, log: log}
}

func (s *tripService) Trips(ctx context.Context) <-chan []models.Trip {
	return s.store.ListTrips(ctx)
}

func (s *tripService) Get(ctx context.Context, id int64) (*models.Trip, error) {
	return s.store.GetTrip(ctx, id)
}

func tripName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("trip name is empty: %w", common.ErrInvalidArgument)
	}
	return name, nil
}

func (s *tripService) Add(ctx context.Context, name string) (*models.Trip, error) {
	name, err := tripName(name)
	if err != nil {
		return nil, err
	}

	t := &models.Trip{Name: name, CreatedAt: timex.NowMillis(s.clock)}
	if err := s.store.UpsertTrip(context.WithoutCancel(ctx), t); err != nil {
		return nil, fmt.Errorf("add trip: %w", err)
	}
	return t, nil
}

func (s *tripService) Update(ctx context.Context, t *models.Trip) error {
	name, err := tripName(t.Name)
	if err != nil {
		return err
	}
	t.Name = name

	if err := s.store.UpdateTrip(context.WithoutCancel(ctx), t); err != nil {
		return fmt.Errorf("update trip %d: %w", t.ID, err)
	}
	return nil
}

func (s *tripService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTrip(context.WithoutCancel(ctx), id); err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	return nil
}

func (s *tripService) DeleteWithEntries(ctx context.Context, id int64) error {
	ctx = context.WithoutCancel(ctx)

	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repos) error {
		if err := r.Images.DeleteByTrip(ctx, id); err != nil {
			return err
		}
		if err := r.Entries.DeleteByTrip(ctx, id); err != nil {
			return err
		}
		return r.Trips.Delete(ctx, id)
	}, watch.Images, watch.Entries, watch.Trips)
	if err != nil {
		s.log.Error(ctx, "cascade delete failed", "trip_id", id, "error", err)
		return fmt.Errorf("delete trip %d with entries: %w", id, err)
	}

	s.log.Info(ctx, "trip deleted", "trip_id", id)
	return nil
}
