// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a pool from Config, retrying while the database comes up.
// Migrate applies goose migrations read from an fs.FS, usually an embedded
// directory owned by the package that defines the schema. WithTx runs a
// function inside a transaction that is committed only when the function
// returns nil.
//
//	cfg, _ := config.Load[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, catalog.Migrations, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// IsNotFoundError, IsDuplicateKeyError and IsForeignKeyViolationError
// classify driver errors without leaking pgconn types into callers.
package pg
