// Package trips persists Trip rows in the local SQLite database.
package trips

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
)

// Repository describes storage operations for trips. Deleting a trip removes
// only its own row; cascading to entries and images is the caller's job.
type Repository interface {
	List(ctx context.Context) ([]models.Trip, error)

	// GetByID returns (nil, nil) when no trip has the given id.
	GetByID(ctx context.Context, id int64) (*models.Trip, error)

	// Upsert inserts the trip, or replaces the row with the same non-zero id.
	// The assigned id is written back into t.
	Upsert(ctx context.Context, t *models.Trip) error

	Update(ctx context.Context, t *models.Trip) error
	Delete(ctx context.Context, id int64) error
}
