package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskPgRepository is the relational task adapter. Listing order is
// descending by id, which is NOT the document store's order.
type TaskPgRepository struct {
	db *pgxpool.Pool
}

func NewTaskPgRepository(db *pgxpool.Pool) *TaskPgRepository {
	return &TaskPgRepository{db: db}
}

func (r *TaskPgRepository) Insert(ctx context.Context, title, correlationID string) (*domain.Task, error) {
	var id int64
	t := domain.Task{
		Title:         title,
		CorrelationID: correlationID,
		Store:         domain.StoreRelational,
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks_pg (title, correlation_id) VALUES ($1, $2) RETURNING id, created_at`,
		title, correlationID,
	).Scan(&id, &t.CreatedAt)
	if err != nil {
		return nil, pgUnavailable(err)
	}

	t.ID = strconv.FormatInt(id, 10)
	return &t, nil
}

func (r *TaskPgRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(correlation_id::text, ''), created_at FROM tasks_pg ORDER BY id DESC`)
	if err != nil {
		return nil, pgUnavailable(err)
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var id int64
		t := domain.Task{Store: domain.StoreRelational}
		if err := rows.Scan(&id, &t.Title, &t.CorrelationID, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.ID = strconv.FormatInt(id, 10)
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskPgRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		// non-numeric ids can never address a relational row
		return nil, domain.NotFound("Task not found")
	}

	t := domain.Task{ID: id, Store: domain.StoreRelational}
	err = r.db.QueryRow(ctx,
		`SELECT title, COALESCE(correlation_id::text, ''), created_at FROM tasks_pg WHERE id = $1`, n,
	).Scan(&t.Title, &t.CorrelationID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Task not found")
	}
	if err != nil {
		return nil, pgUnavailable(err)
	}
	return &t, nil
}

func (r *TaskPgRepository) DeleteByID(ctx context.Context, id string) (*domain.Task, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.NotFound("Task not found")
	}

	t := domain.Task{ID: id, Store: domain.StoreRelational}
	err = r.db.QueryRow(ctx,
		`DELETE FROM tasks_pg WHERE id = $1 RETURNING title, COALESCE(correlation_id::text, ''), created_at`, n,
	).Scan(&t.Title, &t.CorrelationID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Task not found")
	}
	if err != nil {
		return nil, pgUnavailable(err)
	}
	return &t, nil
}

func (r *TaskPgRepository) DeleteByCorrelationID(ctx context.Context, correlationID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks_pg WHERE correlation_id = $1`, correlationID)
	if err != nil {
		return 0, pgUnavailable(err)
	}
	return tag.RowsAffected(), nil
}

// pgUnavailable maps driver failures onto the store-unavailable kind so the
// coordinator can treat them as partial failures.
func pgUnavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
