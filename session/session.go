// Package session issues and verifies signed session tokens and carries the
// authenticated principal through the request context.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "kitchen_session"

	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var ErrInvalidToken = errors.New("invalid session token")

// Principal is the authenticated caller resolved from a session token.
type Principal struct {
	UserID int
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(secret []byte, ttl time.Duration, secureCookie bool) *Manager {
	return &Manager{secret: secret, ttl: ttl, secure: secureCookie, now: time.Now}
}

// Issue signs a token for the user and returns it with its expiry.
func (m *Manager) Issue(userID int, role string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the token signature and expiry and returns its principal.
func (m *Manager) Parse(tokenString string) (Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.Atoi(c.Subject)
	if err != nil || userID <= 0 {
		return Principal{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return Principal{UserID: userID, Role: c.Role}, nil
}

type contextKey struct{}

func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
