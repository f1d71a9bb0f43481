package images

import (
	"context"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListByEntry(ctx context.Context, entryID int64) ([]models.Image, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entry_id, image_uri FROM images WHERE entry_id = ? ORDER BY id`, entryID)
	if err != nil {
		return nil, dbx.Unavailable("failed to select images", err)
	}
	defer rows.Close()

	result := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.EntryID, &img.ImageURI); err != nil {
			return nil, dbx.Unavailable("failed to scan image", err)
		}
		result = append(result, img)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Unavailable("failed to iterate images", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, img *models.Image) (int64, error) {
	if img.ID != 0 {
		query := `INSERT INTO images (id, entry_id, image_uri) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET entry_id = excluded.entry_id, image_uri = excluded.image_uri`
		if _, err := r.db.ExecContext(ctx, query, img.ID, img.EntryID, img.ImageURI); err != nil {
			return 0, dbx.Unavailable("failed to upsert image", err)
		}
		return img.ID, nil
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO images (entry_id, image_uri) VALUES (?, ?)`, img.EntryID, img.ImageURI)
	if err != nil {
		return 0, dbx.Unavailable("failed to insert image", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, dbx.Unavailable("failed to get image id", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id); err != nil {
		return dbx.Unavailable("failed to delete image", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByEntry(ctx context.Context, entryID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE entry_id = ?`, entryID); err != nil {
		return dbx.Unavailable("failed to delete images of entry", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	query := `DELETE FROM images
		WHERE entry_id IN (SELECT id FROM entries WHERE trip_id = ?)`
	if _, err := r.db.ExecContext(ctx, query, tripID); err != nil {
		return dbx.Unavailable("failed to delete images of trip", err)
	}
	return nil
}
