package services

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/client"
	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/logging"
)

// RemoteService reads entries back from the remote diary.
type RemoteService interface {
	// List returns the remote entries. A failure is logged and yields an
	// empty list.
	List(ctx context.Context) []models.RemoteEntry
	Get(ctx context.Context, id string) (*models.RemoteEntry, error)
}

type remoteService struct {
	client client.Client
	log    logging.Logger
}

func NewRemoteService(c client.Client, log logging.Logger) RemoteService {
	return &remoteService{client: c, log: log}
}

func (s *remoteService) List(ctx context.Context) []models.RemoteEntry {
	entries, err := s.client.ListEntries(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to list remote entries", "error", err)
		return []models.RemoteEntry{}
	}
	return entries
}

func (s *remoteService) Get(ctx context.Context, id string) (*models.RemoteEntry, error) {
	e, err := s.client.GetEntry(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "failed to get remote entry", "remote_id", id, "error", err)
		return nil, err
	}
	return e, nil
}
