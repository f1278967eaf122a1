package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanielPopoola/payline-gateway/internal/config"
)

//go:embed migrations/*.up.sql
var migrations embed.FS

// DB is the connection pool backing the call journal.
type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect opens the journal pool and pings it. The pool is closed again
// when the ping fails.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	pgxCfg, err := cfg.PgxConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal database config: %w", err)
	}

	logger = logger.With("component", "journal_db", "host", cfg.Host, "database", cfg.Name)

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		logger.Error("failed to create journal pool", "error", err)
		return nil, fmt.Errorf("create journal pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("journal database unreachable", "error", err)
		return nil, fmt.Errorf("ping journal database: %w", err)
	}

	logger.Debug("journal database connected", "max_conns", pgxCfg.MaxConns)

	return &DB{Pool: pool, logger: logger}, nil
}

// Migrate applies the bundled schema. Every statement is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	files, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, f := range files {
		sql, err := migrations.ReadFile("migrations/" + f.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f.Name(), err)
		}
		if _, err := db.Pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("execute migration %s: %w", f.Name(), err)
		}
		db.logger.Debug("applied migration", "file", f.Name())
	}

	return nil
}

func (db *DB) Close() {
	db.Pool.Close()
	db.logger.Debug("journal pool closed")
}

// IsUniqueViolation reports a unique constraint violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
