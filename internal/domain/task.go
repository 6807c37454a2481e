package domain

import "time"

// Store tags for records and tokens. A task or user always belongs to exactly
// one store; the correlation id is the only thing shared across stores.
const (
	StoreDocument   = "document"
	StoreRelational = "relational"
)

type Task struct {
	// ID is store-specific: a SurrealDB record id ("tasks:xxxx") or a
	// stringified serial from Postgres. Never compare ids across stores.
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`
	Store         string    `json:"-"`
}
