package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"

	"github.com/google/uuid"
)

// Coordinator modes. The mode is fixed at construction: one codebase, three
// deployment shapes, no ambient globals.
const (
	ModeDocument   = domain.StoreDocument
	ModeRelational = domain.StoreRelational
	ModeDual       = "dual"
)

// TaskStore is the adapter contract both task stores implement.
type TaskStore interface {
	Insert(ctx context.Context, title, correlationID string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	DeleteByID(ctx context.Context, id string) (*domain.Task, error)
	DeleteByCorrelationID(ctx context.Context, correlationID string) (int64, error)
}

// UserStore is the adapter contract both user stores implement.
type UserStore interface {
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	LinkOAuth(ctx context.Context, id, provider, oauthID string) error
}

// Outcome of one store within a dual-write operation.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StoreResult captures what happened in one store.
type StoreResult struct {
	Outcome Outcome
	Task    *domain.Task
	Err     error
}

// WriteReport is the per-store outcome of a dual-write operation. Secondary
// failures are visible here (and in logs) instead of being swallowed.
type WriteReport struct {
	Document   StoreResult
	Relational StoreResult
}

// AuthResult is a signed token plus the public user it was issued for.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Coordinator executes the logical operations that must touch both backing
// stores and defines the merge policy on partial failure. There is no
// cross-store transaction: writes fan out concurrently, the operation
// succeeds iff the primary read path succeeded, and the other store is never
// rolled back.
type Coordinator struct {
	mode     string
	docTasks TaskStore
	relTasks TaskStore
	docUsers UserStore
	relUsers UserStore
	creds    *Credentials
	log      *slog.Logger
}

func NewCoordinator(mode string, docTasks, relTasks TaskStore, docUsers, relUsers UserStore, creds *Credentials) *Coordinator {
	return &Coordinator{
		mode:     mode,
		docTasks: docTasks,
		relTasks: relTasks,
		docUsers: docUsers,
		relUsers: relUsers,
		creds:    creds,
		log:      logger.Component("coordinator"),
	}
}

func (c *Coordinator) Mode() string { return c.mode }

func (c *Coordinator) docActive() bool { return c.mode != ModeRelational }
func (c *Coordinator) relActive() bool { return c.mode != ModeDocument }

// primaryStore returns the store tag of the read path the index view uses.
// In dual mode that is the document store.
func (c *Coordinator) primaryStore() string {
	if c.docActive() {
		return domain.StoreDocument
	}
	return domain.StoreRelational
}

func (c *Coordinator) secondaryStore() string {
	if c.primaryStore() == domain.StoreDocument {
		return domain.StoreRelational
	}
	return domain.StoreDocument
}

// CreateTask fans the insert out to every active store and waits for both.
// The same generated correlation id lands in each store so deletes can find
// the logically-same row later without a shared primary key.
func (c *Coordinator) CreateTask(ctx context.Context, title string) (*WriteReport, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.Validation("Title is required")
	}

	correlationID := uuid.NewString()
	report := &WriteReport{
		Document:   StoreResult{Outcome: OutcomeSkipped},
		Relational: StoreResult{Outcome: OutcomeSkipped},
	}

	var wg sync.WaitGroup
	if c.docActive() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Document = insertOutcome(c.docTasks.Insert(ctx, title, correlationID))
		}()
	}
	if c.relActive() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Relational = insertOutcome(c.relTasks.Insert(ctx, title, correlationID))
		}()
	}
	wg.Wait()

	primary, secondary := c.splitPrimary(report)
	if primary.Err != nil {
		return report, primary.Err
	}
	if secondary.Outcome == OutcomeFailed {
		dualWriteDivergence.WithLabelValues("create_task", c.secondaryStore()).Inc()
		c.log.Warn("task create diverged, secondary store failed",
			"title", title,
			"correlation_id", correlationID,
			"error", secondary.Err)
	}
	return report, nil
}

func insertOutcome(t *domain.Task, err error) StoreResult {
	if err != nil {
		return StoreResult{Outcome: OutcomeFailed, Err: err}
	}
	return StoreResult{Outcome: OutcomeOK, Task: t}
}

// ListTasks returns each active store's listing without merging: orders
// differ per store and ids are never comparable. A secondary listing failure
// degrades to an empty list.
func (c *Coordinator) ListTasks(ctx context.Context) (doc, rel []*domain.Task, err error) {
	if c.docActive() {
		// the document store is the primary read path whenever it is active
		doc, err = c.docTasks.List(ctx)
		if err != nil {
			return nil, nil, err
		}
	}
	if c.relActive() {
		rel, err = c.relTasks.List(ctx)
		if err != nil && c.primaryStore() == domain.StoreRelational {
			return nil, nil, err
		}
		if err != nil {
			c.log.Warn("relational task listing failed", "error", err)
			rel, err = nil, nil
		}
	}
	return doc, rel, nil
}

// DeleteTask removes the task from the addressed store first, then removes
// the correlated row from the other active store. The secondary delete is
// best-effort: its failure is logged and reported, never surfaced.
func (c *Coordinator) DeleteTask(ctx context.Context, id, store string) (*WriteReport, error) {
	if store == "" {
		store = c.primaryStore()
	}

	var addressed, other TaskStore
	var addressedTag string
	switch store {
	case domain.StoreDocument:
		if !c.docActive() {
			return nil, domain.Validation("Document store is not active")
		}
		addressed, other, addressedTag = c.docTasks, nil, domain.StoreDocument
		if c.relActive() {
			other = c.relTasks
		}
	case domain.StoreRelational:
		if !c.relActive() {
			return nil, domain.Validation("Relational store is not active")
		}
		addressed, other, addressedTag = c.relTasks, nil, domain.StoreRelational
		if c.docActive() {
			other = c.docTasks
		}
	default:
		return nil, domain.Validation("Unknown store")
	}

	report := &WriteReport{
		Document:   StoreResult{Outcome: OutcomeSkipped},
		Relational: StoreResult{Outcome: OutcomeSkipped},
	}

	removed, err := addressed.DeleteByID(ctx, id)
	if err != nil {
		report.set(addressedTag, StoreResult{Outcome: OutcomeFailed, Err: err})
		return report, err
	}
	report.set(addressedTag, StoreResult{Outcome: OutcomeOK, Task: removed})

	if other == nil {
		return report, nil
	}

	otherTag := domain.StoreRelational
	if addressedTag == domain.StoreRelational {
		otherTag = domain.StoreDocument
	}

	if removed.CorrelationID == "" {
		// pre-correlation row, nothing safe to match in the other store
		c.log.Warn("task has no correlation id, skipping secondary delete",
			"id", removed.ID, "title", removed.Title)
		return report, nil
	}

	n, err := other.DeleteByCorrelationID(ctx, removed.CorrelationID)
	if err != nil {
		report.set(otherTag, StoreResult{Outcome: OutcomeFailed, Err: err})
		dualWriteDivergence.WithLabelValues("delete_task", otherTag).Inc()
		c.log.Warn("task delete diverged, secondary store failed",
			"correlation_id", removed.CorrelationID,
			"error", err)
		return report, nil
	}
	report.set(otherTag, StoreResult{Outcome: OutcomeOK})
	if n == 0 {
		c.log.Info("no correlated task in secondary store",
			"correlation_id", removed.CorrelationID)
	}
	return report, nil
}

func (r *WriteReport) set(store string, sr StoreResult) {
	if store == domain.StoreDocument {
		r.Document = sr
	} else {
		r.Relational = sr
	}
}

func (c *Coordinator) splitPrimary(r *WriteReport) (primary, secondary StoreResult) {
	if c.primaryStore() == domain.StoreDocument {
		return r.Document, r.Relational
	}
	return r.Relational, r.Document
}

// Register validates input, rejects duplicates found in any active store
// (document store checked first), hashes the password exactly once and fans
// the insert out to every active store.
func (c *Coordinator) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.Validation("All fields are required")
	}
	if len(password) < 6 {
		return nil, domain.Validation("Password must be at least 6 characters")
	}

	for _, users := range c.activeUserStores() {
		existing, err := users.FindByEmailOrUsername(ctx, email, username)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			// best-effort check: an unreachable store cannot veto registration
			c.log.Warn("duplicate check failed", "error", err)
			continue
		}
		if existing != nil {
			return nil, domain.Conflict("User already exists")
		}
	}

	hash, err := c.creds.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: hash,
		Provider: domain.ProviderLocal,
	}

	report := &WriteReport{
		Document:   StoreResult{Outcome: OutcomeSkipped},
		Relational: StoreResult{Outcome: OutcomeSkipped},
	}
	var docUser, relUser *domain.User

	var wg sync.WaitGroup
	if c.docActive() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := c.docUsers.Insert(ctx, user)
			docUser = u
			report.Document = userOutcome(u, err)
		}()
	}
	if c.relActive() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := c.relUsers.Insert(ctx, user)
			relUser = u
			report.Relational = userOutcome(u, err)
		}()
	}
	wg.Wait()

	primary, secondary := c.splitPrimary(report)
	if primary.Err != nil {
		return nil, primary.Err
	}
	if secondary.Outcome == OutcomeFailed {
		dualWriteDivergence.WithLabelValues("register", c.secondaryStore()).Inc()
		c.log.Warn("user registration diverged, secondary store failed",
			"email", email, "error", secondary.Err)
	}

	created := docUser
	if c.primaryStore() == domain.StoreRelational {
		created = relUser
	}

	token, err := c.creds.IssueToken(created)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: created}, nil
}

func userOutcome(u *domain.User, err error) StoreResult {
	if err != nil {
		return StoreResult{Outcome: OutcomeFailed, Err: err}
	}
	return StoreResult{Outcome: OutcomeOK}
}

// Login finds the user in lookup order (document store first) and verifies
// the password against that store's hash. First store wins: a user present
// in both stores authenticates against the document copy.
func (c *Coordinator) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Validation("Email and password are required")
	}

	for _, users := range c.activeUserStores() {
		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				c.log.Warn("login lookup failed", "error", err)
			}
			continue
		}
		if !c.creds.VerifyPassword(password, user.Password) {
			return nil, domain.Authentication("Invalid credentials")
		}
		token, err := c.creds.IssueToken(user)
		if err != nil {
			return nil, err
		}
		return &AuthResult{Token: token, User: user}, nil
	}
	return nil, domain.Authentication("Invalid credentials")
}

// Profile resolves a token subject to a user, document store first. An id
// that is not a valid record id simply skips that store.
func (c *Coordinator) Profile(ctx context.Context, subject string) (*domain.User, error) {
	for _, users := range c.activeUserStores() {
		user, err := users.FindByID(ctx, subject)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				c.log.Warn("profile lookup failed", "error", err)
			}
			continue
		}
		return user, nil
	}
	return nil, domain.NotFound("User not found")
}

func (c *Coordinator) activeUserStores() []UserStore {
	var stores []UserStore
	if c.docActive() {
		stores = append(stores, c.docUsers)
	}
	if c.relActive() {
		stores = append(stores, c.relUsers)
	}
	return stores
}
