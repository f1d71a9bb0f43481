package entries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/common"
	"github.com/dmitrijs2005/travelbook/internal/dbx"
)

const entryColumns = `id, trip_id, title, text, location, timestamp, is_published`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (models.Entry, error) {
	var (
		e        models.Entry
		location sql.NullString
	)
	if err := s.Scan(&e.ID, &e.TripID, &e.Title, &e.Text, &location, &e.Timestamp, &e.IsPublished); err != nil {
		return models.Entry{}, err
	}
	if location.Valid {
		loc := location.String
		e.Location = &loc
	}
	return e, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *SQLiteRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE trip_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, dbx.Unavailable("failed to select entries", err)
	}
	defer rows.Close()

	result := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, dbx.Unavailable("failed to scan entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable("failed to iterate entries", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ? LIMIT 1`, id)

	e, err := scanEntry(row)
	if err != nil {
		if dbx.IsNoRows(err) {
			return nil, nil
		}
		return nil, dbx.Unavailable(fmt.Sprintf("failed to get entry %d", id), err)
	}
	return &e, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.Entry) (int64, error) {
	if e.ID == 0 {
		query := `INSERT INTO entries (trip_id, title, text, location, timestamp, is_published)
			VALUES (?, ?, ?, ?, ?, ?)`
		res, err := r.db.ExecContext(ctx, query,
			e.TripID, e.Title, e.Text, nullable(e.Location), e.Timestamp, e.IsPublished)
		if err != nil {
			return 0, dbx.Unavailable("failed to insert entry", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, dbx.Unavailable("failed to get entry id", err)
		}
		return id, nil
	}

	query := `INSERT INTO entries (id, trip_id, title, text, location, timestamp, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET trip_id = excluded.trip_id,
			title = excluded.title,
			text = excluded.text,
			location = excluded.location,
			timestamp = excluded.timestamp,
			is_published = MAX(entries.is_published, excluded.is_published)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TripID, e.Title, e.Text, nullable(e.Location), e.Timestamp, e.IsPublished)
	if err != nil {
		return 0, dbx.Unavailable("failed to upsert entry", err)
	}
	return e.ID, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.Entry) error {
	query := `UPDATE entries SET trip_id = ?, title = ?, text = ?, location = ?,
		is_published = MAX(is_published, ?) WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.TripID, e.Title, e.Text, nullable(e.Location), e.IsPublished, e.ID)
	if err != nil {
		return dbx.Unavailable("failed to update entry", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return dbx.Unavailable("failed to get rows affected", err)
	}
	if ra == 0 {
		return fmt.Errorf("entry %d: %w", e.ID, common.ErrNotFound)
	}
	return nil
}

// Delete removes the entry row. Deleting a missing entry is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return dbx.Unavailable("failed to delete entry", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE trip_id = ?`, tripID); err != nil {
		return dbx.Unavailable("failed to delete entries of trip", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE entries SET is_published = 1 WHERE id = ?`, id)
	if err != nil {
		return dbx.Unavailable("failed to mark entry published", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return dbx.Unavailable("failed to get rows affected", err)
	}
	if ra != 1 {
		return fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	return nil
}
