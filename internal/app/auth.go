package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"travelnest/internal/domain"
)

const PasswordResetSent = "Password reset email sent. Please check your inbox."

type identityKey struct{}

// WithIdentity stores the signed-in identity on the context.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// CurrentIdentity returns the signed-in identity, if any.
func CurrentIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok && id.UserID != ""
}

// AuthService fronts the credential service and keeps the users collection in step.
type AuthService struct {
	creds domain.CredentialService
	store domain.DocumentStore
	now   domain.Clock
}

func NewAuthService(creds domain.CredentialService, store domain.DocumentStore) *AuthService {
	return &AuthService{creds: creds, store: store, now: time.Now}
}

// SignUp registers the identity and writes its user document.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (domain.Identity, error) {
	email = normalizeEmail(email)
	id, err := s.creds.SignUp(ctx, email, password, fullName)
	if err != nil {
		return domain.Identity{}, asCredentialError(err)
	}
	u := domain.User{ID: id.UserID, FullName: fullName, Email: email, CreatedAt: s.now()}
	if err := s.store.Set(ctx, colUsers, u.ID, userToDoc(u)); err != nil {
		return domain.Identity{}, err
	}
	log.Info().Str("user_id", u.ID).Msg("user registered")
	return id, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	id, err := s.creds.SignIn(ctx, normalizeEmail(email), password)
	if err != nil {
		return domain.Identity{}, asCredentialError(err)
	}
	return id, nil
}

func (s *AuthService) SignOut(ctx context.Context, id domain.Identity) error {
	return s.creds.SignOut(ctx, id)
}

// ResetPassword returns the message shown to the user on success.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	if err := s.creds.SendPasswordReset(ctx, normalizeEmail(email)); err != nil {
		log.Warn().Err(err).Msg("password reset failed")
		return "", asCredentialError(err)
	}
	return PasswordResetSent, nil
}

// FetchUser reads users/{id}; missing fields are ErrUserRecordInvalid.
func (s *AuthService) FetchUser(ctx context.Context, userID string) (domain.User, error) {
	doc, err := s.store.Get(ctx, colUsers, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.Wrap(domain.ErrUserRecordInvalid, err)
		}
		return domain.User{}, err
	}
	return userFromDoc(userID, doc)
}

func asCredentialError(err error) error {
	if errors.Is(err, domain.ErrCredential) {
		return err
	}
	return domain.Wrap(domain.ErrCredential, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
