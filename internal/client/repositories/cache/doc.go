// Package cache persists the last successful response of catalog endpoints
// so the client can keep serving content while the backend is unreachable.
//
// Rows are keyed by endpoint path and carry the raw envelope data together
// with the time it was fetched:
//
//	repo := cache.NewSQLiteRepository(db)
//	_ = repo.Put(ctx, "/topics", payload, time.Now())
//	hit, err := repo.Get(ctx, "/topics") // common.ErrorNotFound when absent
package cache
