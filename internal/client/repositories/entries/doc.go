// Package entries persists diary entries in the local SQLite database.
//
// # Data model
//
// Each entry belongs to one trip (trip_id) and carries a title, a text, an
// optional location, an immutable creation timestamp (epoch ms) and a
// publish flag. The store never clears is_published once it is set: updates
// keep MAX(old, new), and MarkPublished only ever sets it.
//
// Content freezing for published entries is a policy of the services layer;
// this package does not refuse edits.
//
// # Concurrency
//
// SQLiteRepository is safe for concurrent use when backed by *sql.DB. When
// bound to a *sql.Tx, follow normal transaction scoping rules.
//
// Typical usage
//
//	repo := entries.NewSQLiteRepository(db)
//	id, _ := repo.Insert(ctx, &models.Entry{TripID: tripID, Title: "Day 1"})
//	list, _ := repo.ListByTrip(ctx, tripID)
//	_ = repo.MarkPublished(ctx, id)
package entries
