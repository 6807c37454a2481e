package service

import (
	"context"
	"errors"
	"strings"

	"todo_webapp/internal/domain"

	"github.com/google/uuid"
)

// OAuthUserInfo is what an OAuth provider tells us about the user.
type OAuthUserInfo struct {
	ProviderUserID string
	Email          string
	Name           string
	Provider       string
}

// OAuthProvider abstracts the external identity provider so the callback
// handler can be tested against a fake.
type OAuthProvider interface {
	// LoginURL builds the provider's authorization URL for the given state.
	LoginURL(state string) string
	// ExchangeCode trades an authorization code for the user's identity.
	ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// OAuthLogin upserts the externally-authenticated user into the selected
// store and issues a token tagged with that store. An existing local account
// with the same email gets the provider linkage attached; otherwise a new
// account is created with a random, unusable password.
func (c *Coordinator) OAuthLogin(ctx context.Context, info *OAuthUserInfo, store string) (*AuthResult, error) {
	if store == "" {
		store = c.primaryStore()
	}
	var users UserStore
	switch store {
	case domain.StoreDocument:
		if !c.docActive() {
			return nil, domain.Validation("Document store is not active")
		}
		users = c.docUsers
	case domain.StoreRelational:
		if !c.relActive() {
			return nil, domain.Validation("Relational store is not active")
		}
		users = c.relUsers
	default:
		return nil, domain.Validation("Unknown store")
	}

	user, err := users.FindByEmail(ctx, info.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if user != nil {
		if user.OAuthID == "" {
			if err := users.LinkOAuth(ctx, user.ID, info.Provider, info.ProviderUserID); err != nil {
				return nil, err
			}
			user.Provider = info.Provider
			user.OAuthID = info.ProviderUserID
		}
	} else {
		username := info.Name
		if username == "" {
			username, _, _ = strings.Cut(info.Email, "@")
		}

		// oauth accounts never log in with this password; it only satisfies
		// the not-null hash column
		hash, err := c.creds.HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}

		user, err = users.Insert(ctx, &domain.User{
			Username: username,
			Email:    info.Email,
			Password: hash,
			Provider: info.Provider,
			OAuthID:  info.ProviderUserID,
		})
		if err != nil {
			return nil, err
		}
		c.log.Info("oauth user created",
			"email", info.Email, "provider", info.Provider, "store", user.Store)
	}

	token, err := c.creds.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
