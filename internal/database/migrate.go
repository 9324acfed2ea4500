package database

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	// ErrNothingToRollBack is returned by MigrateDown on an empty schema.
	ErrNothingToRollBack = errors.New("no migrations to roll back")

	// ErrSchemaTooNew means the mirror was written by a newer foodseed.
	// Delete the file and run sync to rebuild it.
	ErrSchemaTooNew = errors.New("mirror schema is newer than this binary")
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

var migrationName = regexp.MustCompile(`^(\d{3})_(.+)\.sql$`)

// Migration is one embedded schema step.
type Migration struct {
	Version     int
	Description string
	UpSQL       string
	DownSQL     string
	Applied     bool
	AppliedAt   time.Time
}

// MigrationResult describes what MigrateUp or MigrateDown did.
type MigrationResult struct {
	Applied        []Migration
	CurrentVersion int
	TargetVersion  int
}

// Migrator applies the embedded migrations to a mirror database.
type Migrator struct {
	db         *DB
	migrations []Migration
}

// NewMigrator loads the embedded migrations and makes sure the bookkeeping
// table exists.
func NewMigrator(db *DB) (*Migrator, error) {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	return &Migrator{db: db, migrations: migrations}, nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, name := range names {
		m := migrationName.FindStringSubmatch(path.Base(name))
		if m == nil {
			slog.Warn("skipping invalid migration filename", "name", name)
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		version, _ := strconv.Atoi(m[1])
		up, down := parseMigration(string(content))
		migrations = append(migrations, Migration{
			Version:     version,
			Description: strings.ReplaceAll(m[2], "_", " "),
			UpSQL:       up,
			DownSQL:     down,
		})
	}

	slices.SortFunc(migrations, func(a, b Migration) int {
		return cmp.Compare(a.Version, b.Version)
	})
	return migrations, nil
}

// parseMigration splits a migration file into its Up and Down sections.
// A file without an Up marker is all Up.
func parseMigration(content string) (up, down string) {
	_, rest, ok := strings.Cut(content, upMarker)
	if !ok {
		return strings.TrimSpace(content), ""
	}
	up, down, _ = strings.Cut(rest, downMarker)
	return strings.TrimSpace(up), strings.TrimSpace(down)
}

// CurrentVersion returns the highest applied migration, 0 for a fresh file.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying current version: %w", err)
	}
	return version, nil
}

func (m *Migrator) latest() int {
	if len(m.migrations) == 0 {
		return 0
	}
	return m.migrations[len(m.migrations)-1].Version
}

// PendingMigrations returns the migrations above the current version.
func (m *Migrator) PendingMigrations(ctx context.Context) ([]Migration, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	i, _ := slices.BinarySearchFunc(m.migrations, current+1, func(mig Migration, v int) int {
		return cmp.Compare(mig.Version, v)
	})
	return slices.Clone(m.migrations[i:]), nil
}

// MigrateUp applies every pending migration, each in its own transaction.
func (m *Migrator) MigrateUp(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	if current > m.latest() {
		return nil, fmt.Errorf("%w: version %d, known %d", ErrSchemaTooNew, current, m.latest())
	}

	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{CurrentVersion: current, TargetVersion: m.latest()}
	for _, mig := range pending {
		slog.Debug("applying migration", "version", mig.Version, "description", mig.Description)

		err := m.exec(ctx, mig.UpSQL,
			"INSERT INTO schema_migrations (version, description) VALUES (?, ?)", mig.Version, mig.Description)
		if err != nil {
			return result, fmt.Errorf("migration %d: %w", mig.Version, err)
		}

		mig.Applied = true
		mig.AppliedAt = time.Now()
		result.Applied = append(result.Applied, mig)
	}

	if len(result.Applied) > 0 {
		slog.Info("mirror schema migrated", "from", current, "to", result.TargetVersion)
	}
	return result, nil
}

// MigrateDown rolls back the most recent migration.
func (m *Migrator) MigrateDown(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{CurrentVersion: current}
	if current == 0 {
		return result, ErrNothingToRollBack
	}

	i := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version == current })
	if i < 0 {
		return result, fmt.Errorf("migration %d not found", current)
	}
	mig := m.migrations[i]
	if mig.DownSQL == "" {
		return result, fmt.Errorf("migration %d has no rollback SQL", current)
	}

	slog.Debug("rolling back migration", "version", mig.Version, "description", mig.Description)

	if err := m.exec(ctx, mig.DownSQL, "DELETE FROM schema_migrations WHERE version = ?", mig.Version); err != nil {
		return result, fmt.Errorf("rollback %d: %w", mig.Version, err)
	}

	result.TargetVersion = 0
	if i > 0 {
		result.TargetVersion = m.migrations[i-1].Version
	}
	return result, nil
}

// exec runs script and the bookkeeping statement in one transaction.
func (m *Migrator) exec(ctx context.Context, script, record string, args ...any) error {
	return m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range splitStatements(script) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing %q: %w", stmt, err)
			}
		}
		if _, err := tx.ExecContext(ctx, record, args...); err != nil {
			return fmt.Errorf("recording migration: %w", err)
		}
		return nil
	})
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version, applied_at FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var (
			version int
			at      string
		)
		if err := rows.Scan(&version, &at); err != nil {
			return nil, fmt.Errorf("scanning migration: %w", err)
		}
		applied[version], _ = time.Parse(time.DateTime, at)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	status := slices.Clone(m.migrations)
	for i := range status {
		status[i].AppliedAt, status[i].Applied = applied[status[i].Version]
	}
	return status, nil
}

// splitStatements splits a script on semicolons outside quoted strings.
// SQLite escapes a quote by doubling it, which toggles in and out again.
func splitStatements(script string) []string {
	var (
		statements []string
		start      int
		quote      byte
	)

	flush := func(end int) {
		if stmt := strings.TrimSpace(script[start:end]); stmt != "" {
			statements = append(statements, stmt)
		}
		start = end + 1
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			flush(i)
		}
	}
	flush(len(script))

	return statements
}
