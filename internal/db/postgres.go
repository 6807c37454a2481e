package db

import (
	"context"

	"todo_webapp/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens the relational store pool and verifies the
// connection. Fatal on failure: the relational store is only optional in
// document-only mode, and then this is never called.
func ConnectPostgres(dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("failed to create postgres pool", "error", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("failed to ping postgres", "error", err)
	}

	logger.Info("postgres connected")
	return pool
}
