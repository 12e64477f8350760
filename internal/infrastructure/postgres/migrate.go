package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// Migration es un archivo NNNN_nombre.up.sql embebido en el binario.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// LoadMigrations lee las migraciones de fsys ordenadas por versión.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var out []Migration
	seen := map[int]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".up.sql")
		num, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migración %q: se espera NNNN_nombre.up.sql", e.Name())
		}
		version, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("migración %q: versión inválida: %w", e.Name(), err)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migración %q: versión %d repetida (%s)", e.Name(), version, prev)
		}
		seen[version] = e.Name()
		body, err := fs.ReadFile(fsys, "migrations/"+e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrate aplica las migraciones pendientes, cada una en su propia transacción.
// Devuelve cuántas se aplicaron.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) (int, error) {
	migrations, err := LoadMigrations(migrationsFS)
	if err != nil {
		return 0, err
	}
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		done, err := applyMigration(ctx, pool, m)
		if err != nil {
			return applied, fmt.Errorf("migración %04d_%s: %w", m.Version, m.Name, err)
		}
		if done {
			applied++
			log.Info().Int("version", m.Version).Str("name", m.Name).Msg("migración aplicada")
		}
	}
	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m Migration) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serializa migradores concurrentes (varias réplicas arrancando a la vez).
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(7204551)`); err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

