package entries

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
)

// Repository describes storage operations for diary entries.
type Repository interface {
	// ListByTrip returns the trip's entries ordered by id.
	ListByTrip(ctx context.Context, tripID int64) ([]models.Entry, error)

	// GetByID returns (nil, nil) when no entry has the given id.
	GetByID(ctx context.Context, id int64) (*models.Entry, error)

	// Insert stores the entry and returns its id. A zero ID lets the store
	// assign one; a non-zero ID replaces that row.
	Insert(ctx context.Context, e *models.Entry) (int64, error)

	// Update rewrites trip, title, text and location. Timestamp is immutable.
	Update(ctx context.Context, e *models.Entry) error

	Delete(ctx context.Context, id int64) error
	DeleteByTrip(ctx context.Context, tripID int64) error

	// MarkPublished sets is_published for the entry.
	MarkPublished(ctx context.Context, id int64) error
}
