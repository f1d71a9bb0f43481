package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/publish"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
	"github.com/dmitrijs2005/travelbook/internal/client/watch"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/dmitrijs2005/travelbook/internal/timex"
)

// PublishReport describes one publish attempt.
type PublishReport struct {
	EntryID   int64
	Published bool
	RemoteID  string
	// Sent is the number of images included in the request.
	Sent int
	// Dropped lists images whose bytes could not be read; they were left
	// out of the request.
	Dropped []models.Image
}

// Partial reports whether the entry was published without all its images.
func (r *PublishReport) Partial() bool {
	return r.Published && len(r.Dropped) > 0
}

// EntryService manages the entries of a trip and publishes them.
type EntryService interface {
	Entries(ctx context.Context, tripID int64) <-chan []models.Entry
	Get(ctx context.Context, id int64) (*models.Entry, error)
	// Add creates an unpublished entry stamped with the current time.
	Add(ctx context.Context, tripID int64, title, text string, location *string) (int64, error)
	// Update changes title, text and location of an unpublished entry.
	Update(ctx context.Context, e *models.Entry) error
	// Delete removes the entry and its images.
	Delete(ctx context.Context, id int64) error

	// PublishEntry sends the stored entry with pre-encoded images. On
	// success the entry is marked published and true is returned; on any
	// failure the stored entry is left as it was.
	PublishEntry(ctx context.Context, e models.Entry, encodedImages []string) (bool, error)
	// Publish reads and encodes the entry's images, then publishes it.
	Publish(ctx context.Context, id int64) (*PublishReport, error)
}

type entryService struct {
	store     *store.Store
	publisher *publish.Publisher
	encoder   *publish.Encoder
	clock     timex.Clock
	log       logging.Logger

	mu sync.Mutex
	// publishing holds the ids of entries with a publish in flight.
	publishing map[int64]struct{}
}

func NewEntryService(s *store.Store, p *publish.Publisher, enc *publish.Encoder, clock timex.Clock, log logging.Logger) EntryService {
	return &entryService{
		store:      s,
		publisher:  p,
		encoder:    enc,
		clock:      clock,
		log:        log,
		publishing: make(map[int64]struct{}),
	}
}

func (s *entryService) Entries(ctx context.Context, tripID int64) <-chan []models.Entry {
	return s.store.ListEntriesByTrip(ctx, tripID)
}

func (s *entryService) Get(ctx context.Context, id int64) (*models.Entry, error) {
	return s.store.GetEntry(ctx, id)
}

// mustGet loads an entry and turns absence into ErrNotFound.
func (s *entryService) mustGet(ctx context.Context, id int64) (*models.Entry, error) {
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	return e, nil
}

func (s *entryService) Add(ctx context.Context, tripID int64, title, text string, location *string) (int64, error) {
	e := &models.Entry{
		TripID:    tripID,
		Title:     title,
		Text:      text,
		Location:  location,
		Timestamp: timex.NowMillis(s.clock),
	}

	// the trip check and the insert share a transaction so a concurrent
	// cascade delete cannot leave the entry orphaned
	var id int64
	err := s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, r store.Repos) error {
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		if trip == nil {
			return fmt.Errorf("trip %d: %w", tripID, common.ErrNotFound)
		}
		id, err = r.Entries.Insert(ctx, e)
		return err
	}, watch.Entries)
	if err != nil {
		return 0, fmt.Errorf("add entry: %w", err)
	}
	return id, nil
}

func (s *entryService) Update(ctx context.Context, e *models.Entry) error {
	current, err := s.mustGet(ctx, e.ID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if current.IsPublished {
		return fmt.Errorf("update entry %d: %w", e.ID, common.ErrEntryPublished)
	}

	next := *current
	next.Title = e.Title
	next.Text = e.Text
	next.Location = e.Location
	if err := s.store.UpdateEntry(context.WithoutCancel(ctx), &next); err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, err)
	}
	*e = next
	return nil
}

func (s *entryService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(context.WithoutCancel(ctx), func(ctx context.Context, r store.Repos) error {
		if err := r.Images.DeleteByEntry(ctx, id); err != nil {
			return err
		}
		return r.Entries.Delete(ctx, id)
	}, watch.Images, watch.Entries)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

func (s *entryService) PublishEntry(ctx context.Context, e models.Entry, encodedImages []string) (bool, error) {
	_, err := s.publish(ctx, e.ID, encodedImages)
	return err == nil, err
}

func (s *entryService) Publish(ctx context.Context, id int64) (*PublishReport, error) {
	report := &PublishReport{EntryID: id}

	images, err := s.store.ImagesByEntry(ctx, id)
	if err != nil {
		return report, fmt.Errorf("publish entry %d: %w", id, err)
	}

	encoded, dropped := s.encoder.Encode(ctx, images)
	report.Dropped = dropped

	remoteID, err := s.publish(ctx, id, encoded)
	if err != nil {
		return report, err
	}

	report.Published = true
	report.RemoteID = remoteID
	report.Sent = len(encoded)
	if report.Partial() {
		s.log.Warn(ctx, "entry published without some images",
			"entry_id", id, "remote_id", remoteID, "dropped", len(dropped))
	}
	return report, nil
}

// publish sends the stored entry and marks it published. The stored row is
// what gets sent, so a stale copy held by the caller cannot leak out.
func (s *entryService) publish(ctx context.Context, id int64, encodedImages []string) (string, error) {
	if !s.claim(id) {
		return "", fmt.Errorf("publish entry %d: already in progress: %w", id, common.ErrEntryPublished)
	}
	defer s.release(id)

	current, err := s.mustGet(ctx, id)
	if err != nil {
		return "", fmt.Errorf("publish entry: %w", err)
	}
	if current.IsPublished {
		return "", fmt.Errorf("publish entry %d: %w", id, common.ErrEntryPublished)
	}

	remoteID, err := s.publisher.Publish(ctx, *current, encodedImages)
	if err != nil {
		s.log.Error(ctx, "failed to publish entry", "entry_id", id, "title", current.Title, "error", err)
		return "", err
	}

	if err := s.store.MarkPublished(context.WithoutCancel(ctx), id); err != nil {
		s.log.Error(ctx, "entry sent but not marked published",
			"entry_id", id, "remote_id", remoteID, "error", err)
		return "", fmt.Errorf("mark entry %d published: %w", id, err)
	}

	s.log.Info(ctx, "entry published", "entry_id", id, "remote_id", remoteID)
	return remoteID, nil
}

// claim marks id as being published. It returns false when another publish
// of the same entry has not finished yet.
func (s *entryService) claim(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.publishing[id]; busy {
		return false
	}
	s.publishing[id] = struct{}{}
	return true
}

func (s *entryService) release(id int64) {
	s.mu.Lock()
	delete(s.publishing, id)
	s.mu.Unlock()
}
