package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelnest/internal/app"
	"travelnest/internal/domain"
	"travelnest/internal/storage/memory"
)

func TestAuth_SignUpWritesUserRecord(t *testing.T) {
	st := memory.New()
	svc := app.NewAuthService(&fakeCreds{id: domain.Identity{UserID: "u1"}}, st)
	ctx := context.Background()

	id, err := svc.SignUp(ctx, "  Ann@Example.com ", "secret1", "Ann Lee")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if id.UserID != "u1" || id.Email != "ann@example.com" {
		t.Fatalf("unexpected identity %+v", id)
	}
	u, err := svc.FetchUser(ctx, "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if u.FullName != "Ann Lee" || u.Email != "ann@example.com" || u.CreatedAt.IsZero() || time.Since(u.CreatedAt) > time.Minute {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestAuth_CredentialErrorsAreTagged(t *testing.T) {
	svc := app.NewAuthService(&fakeCreds{err: errors.New("Invalid email or password.")}, memory.New())
	_, err := svc.SignIn(context.Background(), "a@b.com", "x")
	if !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("want credential error, got %v", err)
	}
	if domain.Cause(err).Error() != "Invalid email or password." {
		t.Fatalf("message lost: %v", err)
	}

	already := app.NewAuthService(&fakeCreds{err: domain.CredentialError("The email address is already in use by another account.")}, memory.New())
	_, err = already.SignUp(context.Background(), "a@b.com", "secret1", "A")
	if domain.Cause(err).Error() != "The email address is already in use by another account." {
		t.Fatalf("double wrapped: %v", err)
	}
}

func TestAuth_FetchUserInvalid(t *testing.T) {
	st := memory.New()
	svc := app.NewAuthService(&fakeCreds{}, st)
	ctx := context.Background()

	if _, err := svc.FetchUser(ctx, "ghost"); !errors.Is(err, domain.ErrUserRecordInvalid) {
		t.Fatalf("missing record: want ErrUserRecordInvalid, got %v", err)
	}
	_ = st.Set(ctx, "users", "u2", domain.Document{"full_name": "No Email", "created_at": time.Now()})
	if _, err := svc.FetchUser(ctx, "u2"); !errors.Is(err, domain.ErrUserRecordInvalid) {
		t.Fatalf("incomplete record: want ErrUserRecordInvalid, got %v", err)
	}
}

func TestAuth_ResetPassword(t *testing.T) {
	creds := &fakeCreds{}
	svc := app.NewAuthService(creds, memory.New())

	msg, err := svc.ResetPassword(context.Background(), "Ann@Example.com")
	if err != nil || msg != app.PasswordResetSent {
		t.Fatalf("got %q, %v", msg, err)
	}
	if len(creds.resets) != 1 || creds.resets[0] != "ann@example.com" {
		t.Fatalf("unexpected resets %v", creds.resets)
	}

	creds.resetErr = errors.New("no user record")
	if _, err := svc.ResetPassword(context.Background(), "x@y.z"); !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("want credential error, got %v", err)
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := app.CurrentIdentity(context.Background()); ok {
		t.Fatalf("empty context has no identity")
	}
	ctx := app.WithIdentity(context.Background(), domain.Identity{UserID: "u1"})
	if id, ok := app.CurrentIdentity(ctx); !ok || id.UserID != "u1" {
		t.Fatalf("got %+v %v", id, ok)
	}
}
