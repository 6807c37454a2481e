package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"todo_webapp/internal/db"
	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

// These tests run against real backing stores and are skipped unless the
// corresponding env vars are set, e.g.
//
//	DATABASE_URL=postgres://... SURREALDB_URL=ws://... go test ./internal/integration/

func pgPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	if err := db.RunMigrations(dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func surrealConn(t *testing.T) *surrealdb.DB {
	t.Helper()
	url := os.Getenv("SURREALDB_URL")
	if url == "" {
		t.Skip("SURREALDB_URL not set")
	}
	conn := db.ConnectSurreal(db.SurrealConfig{
		URL:       url,
		Namespace: "todo_test",
		Database:  "todo_test",
		User:      envOr("SURREALDB_USER", "root"),
		Pass:      envOr("SURREALDB_PASS", "root"),
	})
	t.Cleanup(func() { conn.Close(context.Background()) })
	return conn
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestTaskPgRepositoryRoundtrip(t *testing.T) {
	pool := pgPool(t)
	repo := repository.NewTaskPgRepository(pool)
	ctx := context.Background()

	created, err := repo.Insert(ctx, "integration task", "11111111-2222-3333-4444-555555555555")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == "" || created.Store != domain.StoreRelational {
		t.Fatalf("created = %+v", created)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Title != "integration task" {
		t.Fatalf("title = %q", found.Title)
	}

	n, err := repo.DeleteByCorrelationID(ctx, created.CorrelationID)
	if err != nil {
		t.Fatalf("delete by correlation id: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1", n)
	}

	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("find after delete: err = %v, want not found", err)
	}
}

func TestTaskDocRepositoryRoundtrip(t *testing.T) {
	conn := surrealConn(t)
	repo := repository.NewTaskDocRepository(conn)
	ctx := context.Background()

	created, err := repo.Insert(ctx, "doc integration task", "66666666-7777-8888-9999-000000000000")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == "" || created.Store != domain.StoreDocument {
		t.Fatalf("created = %+v", created)
	}

	removed, err := repo.DeleteByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Title != "doc integration task" {
		t.Fatalf("removed title = %q", removed.Title)
	}

	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("find after delete: err = %v, want not found", err)
	}
}

func TestDenylistRoundtrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	d := service.NewDenylist(addr, os.Getenv("REDIS_PASSWORD"), 0)
	ctx := context.Background()

	jti := "integration-test-jti"
	d.Revoke(ctx, jti, time.Now().Add(time.Minute))
	if !d.Revoked(ctx, jti) {
		t.Fatal("revoked jti not reported revoked")
	}
	if d.Revoked(ctx, "never-revoked-jti") {
		t.Fatal("unknown jti reported revoked")
	}
}
