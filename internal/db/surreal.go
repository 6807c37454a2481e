package db

import (
	"context"

	"todo_webapp/internal/logger"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// SurrealConfig holds document-store connection parameters.
type SurrealConfig struct {
	URL       string
	Namespace string
	Database  string
	User      string
	Pass      string
}

// ConnectSurreal opens the document store connection, signs in as the
// configured user and selects the namespace/database. Fatal on failure,
// mirroring ConnectPostgres.
func ConnectSurreal(cfg SurrealConfig) *surrealdb.DB {
	ctx := context.Background()

	sdb, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		logger.Fatal("failed to connect to surrealdb", "error", err)
	}

	if err := sdb.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		logger.Fatal("failed to select surrealdb namespace", "error", err)
	}

	token, err := sdb.SignIn(ctx, &surrealdb.Auth{
		Username: cfg.User,
		Password: cfg.Pass,
	})
	if err != nil {
		logger.Fatal("failed to sign in to surrealdb", "error", err)
	}

	if err := sdb.Authenticate(ctx, token); err != nil {
		logger.Fatal("failed to authenticate to surrealdb", "error", err)
	}

	logger.Info("surrealdb connected", "ns", cfg.Namespace, "db", cfg.Database)
	return sdb
}
