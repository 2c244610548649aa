// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, store.Migrations, cfg, log); err != nil {
//		return err
//	}
//
// Probe adapts the pool to a readiness check for httpserver.
package pg
