// Package session issues and verifies bearer tokens for signed-in identities.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travelnest/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrRevokedToken = errors.New("token revoked")
)

const revokedPrefix = "revoked:"

type Claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoked domain.Cache
	now     domain.Clock

	// used when revoked is nil; token id -> expiry
	mu    sync.Mutex
	local map[string]time.Time
}

// NewManager signs HS256 tokens. With a nil revoked cache, sign-outs are
// remembered in this process only and do not reach other instances.
func NewManager(secret string, ttl time.Duration, revoked domain.Cache) *Manager {
	if revoked == nil {
		log.Warn().Msg("no shared cache for token revocation, sign-out is local to this process")
	}
	return &Manager{secret: []byte(secret), ttl: ttl, revoked: revoked, now: time.Now, local: map[string]time.Time{}}
}

func (m *Manager) Issue(id domain.Identity) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		Email:       id.Email,
		DisplayName: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	return tok, exp, err
}

func (m *Manager) parse(token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify returns the identity a token was issued for.
func (m *Manager) Verify(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := m.parse(token)
	if err != nil {
		return domain.Identity{}, err
	}
	if m.revoked == nil {
		if m.locallyRevoked(claims.ID) {
			return domain.Identity{}, ErrRevokedToken
		}
	} else {
		var marker bool
		ok, err := m.revoked.Get(ctx, revokedPrefix+claims.ID, &marker)
		if err != nil {
			return domain.Identity{}, err
		}
		if ok {
			return domain.Identity{}, ErrRevokedToken
		}
	}
	return domain.Identity{UserID: claims.Subject, Email: claims.Email, DisplayName: claims.DisplayName}, nil
}

// Revoke blocks the token until it would have expired anyway.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return err
	}
	if m.revoked == nil {
		m.revokeLocally(claims.ID, claims.ExpiresAt.Time)
		return nil
	}
	ttl := int(claims.ExpiresAt.Time.Sub(m.now()).Seconds()) + 1
	return m.revoked.Set(ctx, revokedPrefix+claims.ID, true, ttl)
}

func (m *Manager) revokeLocally(jti string, exp time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.local {
		if !e.After(now) {
			delete(m.local, id)
		}
	}
	m.local[jti] = exp
}

func (m *Manager) locallyRevoked(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.local[jti]
	return ok
}
