// Package images persists image references attached to diary entries.
//
// Only the reference (a file path or URI) is stored; the bytes live
// elsewhere and are read at publish time through a resolver.
//
// Key Types
//
//   - type Repository: contract used by higher-level services
//   - type SQLiteRepository: SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := images.NewSQLiteRepository(db)
//	id, _ := repo.Insert(ctx, &models.Image{EntryID: entryID, ImageURI: "file:///tmp/a.jpg"})
//	list, _ := repo.ListByEntry(ctx, entryID)
//	_ = repo.DeleteByTrip(ctx, tripID)
package images
