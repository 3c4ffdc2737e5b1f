// Package localauth keeps email/password credentials in the document store.
// It stands in for the hosted identity provider when none is configured.
package localauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"travelnest/internal/domain"
)

const (
	colCredentials = "credentials"
	colResets      = "password_resets"
	minPassword    = 6
	resetTTL       = time.Hour
)

type Service struct {
	store domain.DocumentStore
	cost  int
	now   domain.Clock
}

func New(store domain.DocumentStore) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithCost sets the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (domain.Identity, error) {
	if !strings.Contains(email, "@") {
		return domain.Identity{}, domain.CredentialError("The email address is badly formatted.")
	}
	if len(password) < minPassword {
		return domain.Identity{}, domain.CredentialError("The password must be 6 characters long or more.")
	}
	_, err := s.store.Get(ctx, colCredentials, email)
	switch {
	case err == nil:
		return domain.Identity{}, domain.CredentialError("The email address is already in use by another account.")
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.Identity{}, err
	}
	id := domain.Identity{UserID: uuid.NewString(), Email: email, DisplayName: displayName}
	doc := domain.Document{
		"user_id":       id.UserID,
		"email":         email,
		"display_name":  displayName,
		"password_hash": string(hash),
		"created_at":    s.now().UTC(),
	}
	if err := s.store.Set(ctx, colCredentials, email, doc); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	doc, err := s.store.Get(ctx, colCredentials, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Identity{}, domain.CredentialError("Invalid email or password.")
	}
	if err != nil {
		return domain.Identity{}, err
	}
	hash, _ := doc["password_hash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.Identity{}, domain.CredentialError("Invalid email or password.")
	}
	uid, _ := doc["user_id"].(string)
	name, _ := doc["display_name"].(string)
	return domain.Identity{UserID: uid, Email: email, DisplayName: name}, nil
}

func (s *Service) SignOut(context.Context, domain.Identity) error { return nil }

// SendPasswordReset records a single-use reset token. Delivery is out of scope;
// the token is logged at debug level.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	if _, err := s.store.Get(ctx, colCredentials, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CredentialError("There is no user record corresponding to this identifier.")
		}
		return err
	}
	token := uuid.NewString()
	now := s.now().UTC()
	err := s.store.Set(ctx, colResets, token, domain.Document{
		"email":      email,
		"created_at": now,
		"expires_at": now.Add(resetTTL),
	})
	if err != nil {
		return err
	}
	log.Debug().Str("email", email).Str("token", token).Msg("password reset issued")
	return nil
}
