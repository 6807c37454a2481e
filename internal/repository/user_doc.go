package repository

import (
	"context"
	"strings"
	"time"

	"todo_webapp/internal/domain"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const userTable = "users"

type userDoc struct {
	ID        *models.RecordID      `json:"id,omitempty"`
	Username  string                `json:"username"`
	Email     string                `json:"email"`
	Password  string                `json:"password"`
	Provider  string                `json:"oauth_provider"`
	OAuthID   string                `json:"oauth_id,omitempty"`
	CreatedAt models.CustomDateTime `json:"created_at"`
	UpdatedAt models.CustomDateTime `json:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	u := &domain.User{
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		Provider:  d.Provider,
		OAuthID:   d.OAuthID,
		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: d.UpdatedAt.Time,
		Store:     domain.StoreDocument,
	}
	if d.ID != nil {
		u.ID = d.ID.String()
	}
	return u
}

// UserDocRepository is the document user adapter. Uniqueness of email and
// username is checked by the coordinator before insert; the document store
// itself is schema-flexible and does not enforce it.
type UserDocRepository struct {
	db *surrealdb.DB
}

func NewUserDocRepository(db *surrealdb.DB) *UserDocRepository {
	return &UserDocRepository{db: db}
}

func (r *UserDocRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	provider := u.Provider
	if provider == "" {
		provider = domain.ProviderLocal
	}
	now := models.CustomDateTime{Time: time.Now()}

	created, err := surrealdb.Create[userDoc](ctx, r.db, userTable, map[string]any{
		"username":       u.Username,
		"email":          u.Email,
		"password":       u.Password,
		"oauth_provider": provider,
		"oauth_id":       u.OAuthID,
		"created_at":     now,
		"updated_at":     now,
	})
	if err != nil {
		return nil, docUnavailable(err)
	}
	return created.toDomain(), nil
}

func (r *UserDocRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE email = $email LIMIT 1`,
		map[string]any{"email": email})
}

func (r *UserDocRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT * FROM users WHERE email = $email OR username = $username LIMIT 1`,
		map[string]any{"email": email, "username": username})
}

func (r *UserDocRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	rid, err := userRecordID(id)
	if err != nil {
		return nil, err
	}

	doc, err := surrealdb.Select[userDoc](ctx, r.db, rid)
	if err != nil {
		return nil, docUnavailable(err)
	}
	if doc == nil || doc.ID == nil {
		return nil, domain.NotFound("User not found")
	}
	return doc.toDomain(), nil
}

func (r *UserDocRepository) LinkOAuth(ctx context.Context, id, provider, oauthID string) error {
	rid, err := userRecordID(id)
	if err != nil {
		return err
	}

	_, err = surrealdb.Query[[]userDoc](ctx, r.db,
		`UPDATE $rid SET oauth_provider = $provider, oauth_id = $oauth_id, updated_at = time::now()`,
		map[string]any{"rid": rid, "provider": provider, "oauth_id": oauthID})
	if err != nil {
		return docUnavailable(err)
	}
	return nil
}

func (r *UserDocRepository) findOne(ctx context.Context, query string, vars map[string]any) (*domain.User, error) {
	result, err := surrealdb.Query[[]userDoc](ctx, r.db, query, vars)
	if err != nil {
		return nil, docUnavailable(err)
	}
	if result == nil || len(*result) == 0 || len((*result)[0].Result) == 0 {
		return nil, domain.NotFound("User not found")
	}
	return (*result)[0].Result[0].toDomain(), nil
}

func userRecordID(id string) (models.RecordID, error) {
	table, key, ok := strings.Cut(id, ":")
	if !ok || table != userTable || key == "" {
		return models.RecordID{}, domain.NotFound("User not found")
	}
	return models.NewRecordID(userTable, key), nil
}
