package handlers_test

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"todo_webapp/internal/config"
	"todo_webapp/internal/domain"
	apphttp "todo_webapp/internal/http"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memTaskStore is a minimal in-memory TaskStore for handler tests.
type memTaskStore struct {
	mu     sync.Mutex
	store  string
	nextID int
	tasks  map[string]*domain.Task
}

func newMemTaskStore(store string) *memTaskStore {
	return &memTaskStore{store: store, tasks: make(map[string]*domain.Task)}
}

func (m *memTaskStore) Insert(ctx context.Context, title, correlationID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &domain.Task{
		ID:            strconv.Itoa(m.nextID),
		Title:         title,
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
		Store:         m.store,
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Task
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, domain.NotFound("Task not found")
}

func (m *memTaskStore) DeleteByID(ctx context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.NotFound("Task not found")
	}
	delete(m.tasks, id)
	return t, nil
}

func (m *memTaskStore) DeleteByCorrelationID(ctx context.Context, correlationID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, t := range m.tasks {
		if t.CorrelationID == correlationID {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

// memUserStore is a minimal in-memory UserStore for handler tests.
type memUserStore struct {
	mu     sync.Mutex
	store  string
	nextID int
	users  map[string]*domain.User
}

func newMemUserStore(store string) *memUserStore {
	return &memUserStore{store: store, users: make(map[string]*domain.User)}
}

func (m *memUserStore) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, domain.Conflict("User already exists")
		}
	}
	m.nextID++
	copied := *u
	copied.ID = fmt.Sprintf("%s-%d", m.store, m.nextID)
	copied.Store = m.store
	m.users[copied.ID] = &copied
	return &copied, nil
}

func (m *memUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.NotFound("User not found")
}

func (m *memUserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, domain.NotFound("User not found")
}

func (m *memUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.NotFound("User not found")
}

func (m *memUserStore) LinkOAuth(ctx context.Context, id, provider, oauthID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.NotFound("User not found")
	}
	u.Provider = provider
	u.OAuthID = oauthID
	return nil
}

type testApp struct {
	router   *gin.Engine
	docTasks *memTaskStore
	relTasks *memTaskStore
	coord    *service.Coordinator
	creds    *service.Credentials
}

// generous limits so tests never trip the limiter
func testConfig() *config.Config {
	limit := config.RateLimit{Max: 10000, Window: time.Minute}
	return &config.Config{
		DatabaseMode: config.ModeDual,
		GeneralLimit: limit,
		AuthLimit:    limit,
		TokenLimit:   limit,
		CRUDLimit:    limit,
		StrictLimit:  limit,
	}
}

func newTestApp(google *service.GoogleOAuthProvider) *testApp {
	return newTestAppMode(config.ModeDual, google)
}

// newTestAppMode wires stores the way main does: a mode that excludes a
// store leaves its interface nil.
func newTestAppMode(mode string, google *service.GoogleOAuthProvider) *testApp {
	app := &testApp{}
	var (
		docTasks, relTasks service.TaskStore
		docUsers, relUsers service.UserStore
	)
	if mode != config.ModeRelational {
		app.docTasks = newMemTaskStore(domain.StoreDocument)
		docTasks = app.docTasks
		docUsers = newMemUserStore(domain.StoreDocument)
	}
	if mode != config.ModeDocument {
		app.relTasks = newMemTaskStore(domain.StoreRelational)
		relTasks = app.relTasks
		relUsers = newMemUserStore(domain.StoreRelational)
	}

	app.creds = service.NewCredentials("handler-test-secret", time.Hour)
	denylist := service.NewDenylist("", "", 0)
	app.coord = service.NewCoordinator(mode, docTasks, relTasks, docUsers, relUsers, app.creds)

	if google == nil {
		google = service.NewGoogleOAuthProvider(service.GoogleOAuthConfig{})
	}

	h := handlers.NewHandler(app.coord, docTasks, relTasks, app.creds, denylist, google)

	cfg := testConfig()
	cfg.DatabaseMode = mode
	app.router = gin.New()
	apphttp.RegisterRoutes(app.router, h, cfg, nil, nil, "test")
	return app
}
