package localauth_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"travelnest/internal/adapters/localauth"
	"travelnest/internal/domain"
	"travelnest/internal/storage/memory"
)

func newService() (*localauth.Service, *memory.Store) {
	st := memory.New()
	return localauth.New(st).WithCost(bcrypt.MinCost), st
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	id, err := svc.SignUp(ctx, "ann@example.com", "secret1", "Ann")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if id.UserID == "" || id.DisplayName != "Ann" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	got, err := svc.SignIn(ctx, "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if got.UserID != id.UserID {
		t.Fatalf("identity mismatch: %s vs %s", got.UserID, id.UserID)
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.SignUp(ctx, "ann@example.com", "secret1", "Ann")

	_, err := svc.SignIn(ctx, "ann@example.com", "wrong!")
	if !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("want credential error, got %v", err)
	}
	_, err = svc.SignIn(ctx, "nobody@example.com", "secret1")
	if !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("want credential error for unknown email, got %v", err)
	}
}

func TestSignUp_Rejects(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cases := []struct{ name, email, pw string }{
		{"bad email", "not-an-email", "secret1"},
		{"weak password", "a@b.com", "123"},
	}
	for _, tc := range cases {
		if _, err := svc.SignUp(ctx, tc.email, tc.pw, ""); !errors.Is(err, domain.ErrCredential) {
			t.Fatalf("%s: want credential error, got %v", tc.name, err)
		}
	}

	_, _ = svc.SignUp(ctx, "a@b.com", "secret1", "")
	if _, err := svc.SignUp(ctx, "a@b.com", "secret2", ""); !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("duplicate: want credential error, got %v", err)
	}
}

func TestSendPasswordReset(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	if err := svc.SendPasswordReset(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("want credential error, got %v", err)
	}
	_, _ = svc.SignUp(ctx, "ann@example.com", "secret1", "Ann")
	if err := svc.SendPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	resets, _ := st.List(ctx, "password_resets")
	if len(resets) != 1 || resets[0].Data["email"] != "ann@example.com" {
		t.Fatalf("unexpected resets: %+v", resets)
	}
}
