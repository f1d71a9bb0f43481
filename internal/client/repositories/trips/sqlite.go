package trips

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Trip, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM trips ORDER BY id`)
	if err != nil {
		return nil, dbx.Unavailable("failed to select trips", err)
	}
	defer rows.Close()

	result := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, dbx.Unavailable("failed to scan trip", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable("failed to iterate trips", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM trips WHERE id = ? LIMIT 1`, id)

	t := &models.Trip{}
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		if dbx.IsNoRows(err) {
			return nil, nil
		}
		return nil, dbx.Unavailable(fmt.Sprintf("failed to get trip %d", id), err)
	}
	return t, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, t *models.Trip) error {
	if t.ID == 0 {
		res, err := r.db.ExecContext(ctx, `INSERT INTO trips (name, created_at) VALUES (?, ?)`, t.Name, t.CreatedAt)
		if err != nil {
			return dbx.Unavailable("failed to insert trip", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return dbx.Unavailable("failed to get trip id", err)
		}
		t.ID = id
		return nil
	}

	query := `INSERT INTO trips (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, created_at = excluded.created_at`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.CreatedAt); err != nil {
		return dbx.Unavailable("failed to upsert trip", err)
	}
	return nil
}

// Update rewrites the trip's name. CreatedAt is immutable.
func (r *SQLiteRepository) Update(ctx context.Context, t *models.Trip) error {
	res, err := r.db.ExecContext(ctx, `UPDATE trips SET name = ? WHERE id = ?`, t.Name, t.ID)
	if err != nil {
		return dbx.Unavailable("failed to update trip", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return dbx.Unavailable("failed to get rows affected", err)
	}
	if ra == 0 {
		return fmt.Errorf("trip %d: %w", t.ID, common.ErrNotFound)
	}
	return nil
}

// Delete removes the trip row. Deleting a missing trip is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id); err != nil {
		return dbx.Unavailable("failed to delete trip", err)
	}
	return nil
}
