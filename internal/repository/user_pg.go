package repository

import (
	"context"
	"errors"
	"strconv"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserPgRepository is the relational user adapter.
type UserPgRepository struct {
	db *pgxpool.Pool
}

func NewUserPgRepository(db *pgxpool.Pool) *UserPgRepository {
	return &UserPgRepository{db: db}
}

const userPgColumns = `id, username, email, password, oauth_provider, COALESCE(oauth_id, ''), created_at, updated_at`

func scanPgUser(row pgx.Row) (*domain.User, error) {
	var id int64
	u := domain.User{Store: domain.StoreRelational}
	err := row.Scan(&id, &u.Username, &u.Email, &u.Password, &u.Provider, &u.OAuthID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("User not found")
	}
	if err != nil {
		return nil, pgUnavailable(err)
	}
	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

func (r *UserPgRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	provider := u.Provider
	if provider == "" {
		provider = domain.ProviderLocal
	}

	var id int64
	out := *u
	out.Provider = provider
	out.Store = domain.StoreRelational

	err := r.db.QueryRow(ctx,
		`INSERT INTO users_pg (username, email, password, oauth_provider, oauth_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.Password, provider, u.OAuthID,
	).Scan(&id, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		// a unique violation means we lost a race with another registration
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.Conflict("User already exists")
		}
		return nil, pgUnavailable(err)
	}

	out.ID = strconv.FormatInt(id, 10)
	return &out, nil
}

func (r *UserPgRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanPgUser(r.db.QueryRow(ctx,
		`SELECT `+userPgColumns+` FROM users_pg WHERE email = $1`, email))
}

func (r *UserPgRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return scanPgUser(r.db.QueryRow(ctx,
		`SELECT `+userPgColumns+` FROM users_pg WHERE email = $1 OR username = $2`, email, username))
}

func (r *UserPgRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.NotFound("User not found")
	}
	return scanPgUser(r.db.QueryRow(ctx,
		`SELECT `+userPgColumns+` FROM users_pg WHERE id = $1`, n))
}

func (r *UserPgRepository) LinkOAuth(ctx context.Context, id, provider, oauthID string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return domain.NotFound("User not found")
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE users_pg SET oauth_provider = $1, oauth_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		provider, oauthID, n)
	if err != nil {
		return pgUnavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("User not found")
	}
	return nil
}
