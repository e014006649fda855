// Package storage opens the local SQLite database, applies migrations and
// wires up the repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/coinkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/usercoins"
)

type Repositories struct {
	UserCoins usercoins.Repository
	Metadata  metadata.Repository
	Catalog   catalog.Repository
	DB        *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the database at dsn, migrates it and
// returns ready repositories. An empty dsn yields an in-memory database.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repos := &Repositories{
		UserCoins: usercoins.NewSQLiteRepository(db),
		Metadata:  metadata.NewSQLiteRepository(db),
		Catalog:   catalog.NewCachedRepository(catalog.NewSQLiteRepository(db)),
		DB:        db,
	}
	return repos, nil
}

func (r *Repositories) Close() error {
	if r.DB == nil {
		return nil
	}
	return r.DB.Close()
}
