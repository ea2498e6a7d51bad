package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"benchgraph/internal"
)

//go:embed *.sql
var files embed.FS

// Migrator applies the embedded schema migrations
type Migrator struct {
	db     *sql.DB
	src    fs.FS
	logger *internal.Logger
}

// NewMigrator creates a migrator over the embedded migrations
func NewMigrator(db *sql.DB, logger *internal.Logger) *Migrator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Migrator{db: db, src: files, logger: logger.With("migrate")}
}

// MigrationFile is one versioned SQL script
type MigrationFile struct {
	Version string
	Name    string
}

// MigrationStatus pairs a migration with whether it has been applied
type MigrationStatus struct {
	MigrationFile
	Applied bool
}

const createTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		applied_at TIMESTAMPTZ DEFAULT NOW()
	)`

// Up executes all pending migrations and returns the versions it applied
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	pending, err := FindMigrationFiles(m.src)
	if err != nil {
		return nil, fmt.Errorf("failed to find migration files: %w", err)
	}

	var done []string
	for _, file := range pending {
		if applied[file.Version] {
			continue
		}
		if err := m.apply(ctx, file); err != nil {
			return done, fmt.Errorf("failed to apply migration %s: %w", file.Version, err)
		}
		m.logger.Info("applied migration %s (%s)", file.Version, file.Name)
		done = append(done, file.Version)
	}
	return done, nil
}

// Status lists every known migration with its applied flag
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if _, err := m.db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("failed to ensure migrations table: %w", err)
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	all, err := FindMigrationFiles(m.src)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, len(all))
	for i, f := range all {
		out[i] = MigrationStatus{MigrationFile: f, Applied: applied[f.Version]}
	}
	return out, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func checksum(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// FindMigrationFiles lists NNN_name.sql scripts in src, ordered by version
func FindMigrationFiles(src fs.FS) ([]MigrationFile, error) {
	names, err := fs.Glob(src, "*.sql")
	if err != nil {
		return nil, err
	}
	var out []MigrationFile
	for _, name := range names {
		base := path.Base(name)
		version, _, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}
		out = append(out, MigrationFile{Version: version, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (m *Migrator) apply(ctx context.Context, file MigrationFile) error {
	body, err := fs.ReadFile(m.src, file.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)",
		file.Version, checksum(body)); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}
