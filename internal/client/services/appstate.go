package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/client/store"
)

// AppStateService tracks whether onboarding has been shown.
type AppStateService interface {
	// Launch records an app start and reports whether it is the first one.
	Launch(ctx context.Context) (bool, error)
}

type appStateService struct {
	store *store.Store
}

func NewAppStateService(s *store.Store) AppStateService {
	return &appStateService{store: s}
}

func (s *appStateService) Launch(ctx context.Context) (bool, error) {
	st, err := s.store.GetAppState(ctx)
	if err != nil {
		return false, fmt.Errorf("read app state: %w", err)
	}
	first := st == nil || st.IsFirstLaunch

	if err := s.store.UpsertAppState(context.WithoutCancel(ctx), &models.AppState{IsFirstLaunch: false}); err != nil {
		return first, fmt.Errorf("write app state: %w", err)
	}
	return first, nil
}
