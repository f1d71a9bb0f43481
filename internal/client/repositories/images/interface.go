package images

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
)

// Repository describes storage operations for image references.
type Repository interface {
	// ListByEntry returns the entry's images in insertion order.
	ListByEntry(ctx context.Context, entryID int64) ([]models.Image, error)

	// Insert stores the image and returns its id. A non-zero ID replaces
	// the existing row.
	Insert(ctx context.Context, img *models.Image) (int64, error)

	Delete(ctx context.Context, id int64) error

	// DeleteByEntry removes every image of one entry.
	DeleteByEntry(ctx context.Context, entryID int64) error

	// DeleteByTrip removes every image attached to any entry of the trip.
	DeleteByTrip(ctx context.Context, tripID int64) error
}
