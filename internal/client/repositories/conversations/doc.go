// Package conversations persists matched conversation threads in the local
// SQLite database.
//
// # Data Model
//
// One row per owner and matched user, where the owner is the logged-in user
// who made the match; (owner_id, user_id) is unique. Rows keep their insertion
// order through an autoincrement sequence, which List uses, so threads come
// back in the order the matches happened. Courses are stored as a JSON array
// of strings; the match time is stored as Unix milliseconds.
//
// # Concurrency
//
// SQLiteRepository works over a dbx.DBTX, so it can run against a *sql.DB or
// inside a transaction opened with dbx.WithTx.
//
// Typical Usage
//
//	repo := conversations.NewSQLiteRepository(db)
//	added, _ := repo.Insert(ctx, ownerID, thread)
//	threads, _ := repo.List(ctx, ownerID)
//	_ = repo.Clear(ctx, ownerID)
package conversations
