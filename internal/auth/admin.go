// Package auth implements the optional admin login: a single configured
// account whose password is kept only as a bcrypt hash, and the HS256
// access tokens issued to it.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/nsm-example/internal/config"
)

// RoleAdmin is the role claim carried by admin tokens.
const RoleAdmin = "ADMIN"

// ErrInvalidCredentials is returned by Login for a wrong user or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin verifies admin credentials and issues access tokens.
type Admin struct {
	user   string
	hash   []byte
	secret string
	ttl    time.Duration
}

// NewAdmin hashes the configured password.  It returns nil, nil when auth
// is disabled.
func NewAdmin(cfg config.AuthConfig) (*Admin, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	ttl := time.Duration(cfg.AccessTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Admin{user: cfg.AdminUser, hash: hash, secret: cfg.JWTSecret, ttl: ttl}, nil
}

// Secret returns the signing secret used for admin tokens.
func (a *Admin) Secret() string { return a.secret }

// Login checks user and password and returns a fresh access token.
func (a *Admin) Login(user, password string) (AccessToken, error) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	if !userOK || !passOK {
		return AccessToken{}, ErrInvalidCredentials
	}
	return NewAccessToken(a.secret, a.user, RoleAdmin, a.ttl)
}
