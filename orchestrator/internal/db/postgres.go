// Package db holds the orchestrator's stream registry (Postgres) and the
// work-queue seeding client (Redis).
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresClient is the stream-registry handle.
type PostgresClient struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresClient opens the registry database and ensures the schema
// exists. Failure here is fatal for the process; the orchestrator must
// not scan without its registry.
func NewPostgresClient(ctx context.Context, connStr string, logger *zap.Logger) (*PostgresClient, error) {
	database, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := database.PingContext(initCtx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := database.ExecContext(initCtx, initTableQuery); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresClient{
		db:     database,
		logger: logger.Named("postgres"),
	}, nil
}

func (r *PostgresClient) Close() error {
	return r.db.Close()
}
