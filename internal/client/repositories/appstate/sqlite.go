// Package appstate persists the single app_state row (id 0).
package appstate

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/dbx"
)

type Repository interface {
	// Get returns (nil, nil) before the row has ever been written.
	Get(ctx context.Context) (*models.AppState, error)
	// Upsert writes the row, always under id 0.
	Upsert(ctx context.Context, s *models.AppState) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.AppState, error) {
	s := &models.AppState{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, is_first_launch FROM app_state WHERE id = ? LIMIT 1`, models.AppStateID).
		Scan(&s.ID, &s.IsFirstLaunch)
	if dbx.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dbx.Unavailable("failed to get app state", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.AppState) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_state (id, is_first_launch) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET is_first_launch = excluded.is_first_launch
	`, models.AppStateID, s.IsFirstLaunch)
	if err != nil {
		return dbx.Unavailable("failed to upsert app state", err)
	}
	s.ID = models.AppStateID
	return nil
}
