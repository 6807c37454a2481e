package domain

import "time"

// OAuth provider tags. "local" means password registration.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Provider  string    `json:"oauth_provider,omitempty"`
	OAuthID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Store     string    `json:"-"`
}

// Public returns the caller-visible fields used in auth responses.
func (u *User) Public() map[string]any {
	return map[string]any{
		"username": u.Username,
		"email":    u.Email,
	}
}
