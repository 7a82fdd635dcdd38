package postgres

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"vet-records/internal/platform/logger"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration es un archivo SQL versionado por su prefijo ("0002_users_username").
type Migration struct {
	Version string
	SQL     string
}

// Migrations devuelve las migraciones embebidas en orden de versión.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Annotate(err, "read migrations")
	}

	out := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		raw, err := fs.ReadFile(migrationFiles, "migrations/"+e.Name())
		if err != nil {
			return nil, errors.Annotatef(err, "read %s", e.Name())
		}
		out = append(out, Migration{
			Version: strings.TrimSuffix(e.Name(), ".sql"),
			SQL:     string(raw),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrate aplica las migraciones pendientes, cada una en su transacción, y
// devuelve las versiones aplicadas.
func Migrate(ctx context.Context, db *sqlx.DB, log logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.NewDiscard()
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return nil, errors.Annotate(err, "create schema_migrations")
	}

	var done []string
	if err := db.SelectContext(ctx, &done, `SELECT version FROM schema_migrations`); err != nil {
		return nil, errors.Annotate(err, "load applied migrations")
	}
	applied := make(map[string]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	all, err := Migrations()
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return ran, err
		}
		log.Info("migration applied", map[string]any{"version": m.Version})
		ran = append(ran, m.Version)
	}
	return ran, nil
}

func apply(ctx context.Context, db *sqlx.DB, m Migration) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "begin migration")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, m.SQL); err != nil {
		return errors.Annotatef(err, "migration %s", m.Version)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return errors.Annotatef(err, "record migration %s", m.Version)
	}
	if err = tx.Commit(); err != nil {
		return errors.Annotatef(err, "commit migration %s", m.Version)
	}
	return nil
}
