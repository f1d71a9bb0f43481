package client

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
)

// Client is the remote diary API.
type Client interface {
	// ListEntries returns every remote entry.
	ListEntries(ctx context.Context) ([]models.RemoteEntry, error)
	// GetEntry returns one remote entry; an unknown id fails with an error
	// matching both ErrSyncFailed and common.ErrNotFound.
	GetEntry(ctx context.Context, id string) (*models.RemoteEntry, error)
	// CreateEntry posts a new entry and returns the id the server assigned.
	CreateEntry(ctx context.Context, req models.CreateEntryRequest) (string, error)
}
