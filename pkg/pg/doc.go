// Package pg bootstraps the PostgreSQL layer: pooled connections via pgx/v5,
// schema migrations via goose/v3, and a health-check closure for readiness
// probes.
//
// Typical startup:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
package pg
