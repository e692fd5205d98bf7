// Package catalog persists accounts, projects, email templates, their
// sections and the variables placed in them.
//
// Storage is implemented by PGStorage (PostgreSQL through pgx) and
// MemoryStorage. Template reads are scoped by account through the owning
// project; section and variable writes take a template ID the caller has
// already loaded through that scope.
//
// Writes that touch a variable or a section together with the template's
// raw HTML are atomic: either both the rows and the HTML change or neither
// does.
//
// The PostgreSQL schema ships with the package:
//
//	if err := pg.Migrate(ctx, pool, catalog.Migrations, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//	store := catalog.NewPGStorage(pool)
package catalog
