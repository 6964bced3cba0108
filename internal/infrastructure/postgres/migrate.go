package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrationLockID clave del advisory lock que serializa migradores concurrentes.
const migrationLockID = 7462840

// Migration archivo NNN_descripcion.sql embebido.
type Migration struct {
	Version  string
	Filename string
	SQL      string
	Checksum string
}

// Migrations devuelve las migraciones embebidas ordenadas por nombre.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	seen := make(map[string]bool)
	var list []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			return nil, fmt.Errorf("nombre de migración inválido %s: se espera NNN_descripcion.sql", e.Name())
		}
		if seen[version] {
			return nil, fmt.Errorf("versión de migración duplicada: %s", version)
		}
		seen[version] = true
		body, err := migrationFS.ReadFile("migrations/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		sum := sha256.Sum256(body)
		list = append(list, Migration{
			Version:  version,
			Filename: e.Name(),
			SQL:      string(body),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Filename < list[j].Filename })
	return list, nil
}

// Migrate aplica las migraciones pendientes, cada una en su transacción.
// Una migración ya aplicada con checksum distinto es un error (el archivo fue editado).
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) (int, error) {
	migrations, err := Migrations()
	if err != nil {
		return 0, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", migrationLockID).Scan(&locked); err != nil {
		return 0, fmt.Errorf("advisory lock: %w", err)
	}
	if !locked {
		return 0, errors.New("otro migrador está en ejecución")
	}
	defer func() { _, _ = conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", migrationLockID) }()

	_, err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			filename   TEXT NOT NULL,
			checksum   TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		var existing string
		err := conn.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", m.Version).Scan(&existing)
		switch {
		case err == nil:
			if existing != m.Checksum {
				return applied, fmt.Errorf("checksum distinto en %s: aplicado %s, embebido %s", m.Filename, existing, m.Checksum)
			}
			log.Debug().Str("migration", m.Filename).Msg("ya aplicada")
			continue
		case !errors.Is(err, pgx.ErrNoRows):
			return applied, fmt.Errorf("consultar schema_migrations: %w", err)
		}

		if err := applyMigration(ctx, conn.Conn(), m); err != nil {
			return applied, err
		}
		applied++
		log.Info().Str("migration", m.Filename).Msg("migración aplicada")
	}
	return applied, nil
}

func applyMigration(ctx context.Context, conn *pgx.Conn, m Migration) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", m.Filename, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("ejecutar %s: %w", m.Filename, err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)",
		m.Version, m.Filename, m.Checksum,
	); err != nil {
		return fmt.Errorf("registrar %s: %w", m.Filename, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", m.Filename, err)
	}
	return nil
}

// TruncateCatalog vacía las tablas del catálogo (stock, productos, subcategorías y categorías).
// schema_migrations no se toca.
func TruncateCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `TRUNCATE TABLE stock, products, subcategories, categories CASCADE`); err != nil {
		return fmt.Errorf("truncate catálogo: %w", err)
	}
	return nil
}
