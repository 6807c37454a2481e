package service

import (
	"time"

	"todo_webapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the verified content of a session token.
type Claims struct {
	Subject   string
	Email     string
	Username  string
	Store     string // originating store tag, set for oauth logins
	JTI       string
	ExpiresAt time.Time
}

// Credentials hashes passwords and issues/verifies signed session tokens.
// Tokens are stateless: expiry is the only built-in termination mechanism,
// logout revocation is layered on top via the denylist.
type Credentials struct {
	secret []byte
	ttl    time.Duration
}

func NewCredentials(secret string, ttl time.Duration) *Credentials {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Credentials{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Credentials) TTL() time.Duration { return c.ttl }

func (c *Credentials) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (c *Credentials) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token for the user. The subject is the user's
// store-specific id; the store tag records which store issued it.
func (c *Credentials) IssueToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"email":    u.Email,
		"username": u.Username,
		"db":       u.Store,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// VerifyToken parses and validates a token. Expiry and signature mismatch
// both collapse to ErrInvalidToken; callers cannot distinguish them.
func (c *Credentials) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &Claims{Subject: sub}
	claims.Email, _ = mc["email"].(string)
	claims.Username, _ = mc["username"].(string)
	claims.Store, _ = mc["db"].(string)
	claims.JTI, _ = mc["jti"].(string)
	if exp, ok := mc["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
