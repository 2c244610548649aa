// Package store persists resources for transition handlers.
//
// Store[T] is deliberately small: Get by id and Save (upsert). Every backend
// serialises T with goccy/go-json, so any JSON-serialisable type works and the
// same resource can move between backends unchanged.
//
//	articles := store.NewMemory(func(a *article.Article) string { return a.ID })
//	articles := store.NewPostgres(pool, "articles", article.Key)
//	articles := store.NewRedis(client, cfg.KeyPrefix, "articles", article.Key)
//	articles := store.NewMongo(db.Collection("articles"), article.Key)
//
// Missing resources are reported with an error wrapping ErrNotFound.
// The Postgres backend expects the table created by Migrations:
//
//	if err := pg.Migrate(ctx, pool, store.Migrations, cfg, log); err != nil {
//		return err
//	}
package store
