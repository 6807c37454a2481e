package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todo_webapp/internal/domain"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const taskTable = "tasks"

// taskDoc is the SurrealDB document shape for a task.
type taskDoc struct {
	ID            *models.RecordID      `json:"id,omitempty"`
	Title         string                `json:"title"`
	CorrelationID string                `json:"correlation_id"`
	CreatedAt     models.CustomDateTime `json:"created_at"`
}

func (d *taskDoc) toDomain() *domain.Task {
	t := &domain.Task{
		Title:         d.Title,
		CorrelationID: d.CorrelationID,
		CreatedAt:     d.CreatedAt.Time,
		Store:         domain.StoreDocument,
	}
	if d.ID != nil {
		t.ID = d.ID.String()
	}
	return t
}

// TaskDocRepository is the document task adapter. Record ids are opaque
// strings assigned by SurrealDB; listing is natural (insertion) order.
type TaskDocRepository struct {
	db *surrealdb.DB
}

func NewTaskDocRepository(db *surrealdb.DB) *TaskDocRepository {
	return &TaskDocRepository{db: db}
}

func (r *TaskDocRepository) Insert(ctx context.Context, title, correlationID string) (*domain.Task, error) {
	created, err := surrealdb.Create[taskDoc](ctx, r.db, taskTable, map[string]any{
		"title":          title,
		"correlation_id": correlationID,
		"created_at":     models.CustomDateTime{Time: time.Now()},
	})
	if err != nil {
		return nil, docUnavailable(err)
	}
	return created.toDomain(), nil
}

func (r *TaskDocRepository) List(ctx context.Context) ([]*domain.Task, error) {
	result, err := surrealdb.Query[[]taskDoc](ctx, r.db, `SELECT * FROM tasks`, nil)
	if err != nil {
		return nil, docUnavailable(err)
	}

	var res []*domain.Task
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			res = append(res, (*result)[0].Result[i].toDomain())
		}
	}
	return res, nil
}

func (r *TaskDocRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	rid, err := taskRecordID(id)
	if err != nil {
		return nil, err
	}

	doc, err := surrealdb.Select[taskDoc](ctx, r.db, rid)
	if err != nil {
		return nil, docUnavailable(err)
	}
	if doc == nil || doc.ID == nil {
		return nil, domain.NotFound("Task not found")
	}
	return doc.toDomain(), nil
}

func (r *TaskDocRepository) DeleteByID(ctx context.Context, id string) (*domain.Task, error) {
	// resolve first so the removed record can be returned
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rid, _ := taskRecordID(id)
	if _, err := surrealdb.Delete[taskDoc](ctx, r.db, rid); err != nil {
		return nil, docUnavailable(err)
	}
	return t, nil
}

func (r *TaskDocRepository) DeleteByCorrelationID(ctx context.Context, correlationID string) (int64, error) {
	result, err := surrealdb.Query[[]taskDoc](ctx, r.db,
		`DELETE FROM tasks WHERE correlation_id = $cid RETURN BEFORE`,
		map[string]any{"cid": correlationID})
	if err != nil {
		return 0, docUnavailable(err)
	}

	var n int64
	if result != nil && len(*result) > 0 {
		n = int64(len((*result)[0].Result))
	}
	return n, nil
}

// taskRecordID parses an opaque "tasks:xxxx" id back into a record id.
// Ids addressing another table do not resolve to a task.
func taskRecordID(id string) (models.RecordID, error) {
	table, key, ok := strings.Cut(id, ":")
	if !ok || table != taskTable || key == "" {
		return models.RecordID{}, domain.NotFound("Task not found")
	}
	return models.NewRecordID(taskTable, key), nil
}

func docUnavailable(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
