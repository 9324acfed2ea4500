package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewInMemory creates an in-memory database. Foreign keys are enabled; WAL
// and migrations are not.
func NewInMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// Every connection to ":memory:" is its own database, so pin to one.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return &DB{DB: sqlDB, path: ":memory:"}, nil
}

// OpenMigrated opens dbPath (":memory:" for an in-memory mirror) and applies
// all pending migrations.
func OpenMigrated(ctx context.Context, dbPath string) (*DB, error) {
	var (
		db  *DB
		err error
	)
	if dbPath == ":memory:" {
		db, err = NewInMemory()
	} else {
		db, err = Open(dbPath)
	}
	if err != nil {
		return nil, err
	}

	migrator, err := NewMigrator(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := migrator.MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating mirror: %w", err)
	}

	return db, nil
}
