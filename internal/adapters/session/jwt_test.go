package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "travelnest/internal/adapters/redis"
	"travelnest/internal/adapters/session"
	"travelnest/internal/domain"
)

func TestIssueVerify(t *testing.T) {
	m := session.NewManager("s3cret", time.Hour, nil)
	tok, exp, err := m.Issue(domain.Identity{UserID: "u1", Email: "a@b.com", DisplayName: "Ann"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}
	id, err := m.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != "u1" || id.Email != "a@b.com" || id.DisplayName != "Ann" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestVerify_Rejects(t *testing.T) {
	m := session.NewManager("s3cret", time.Hour, nil)
	tok, _, _ := m.Issue(domain.Identity{UserID: "u1"})

	other := session.NewManager("other", time.Hour, nil)
	if _, err := other.Verify(context.Background(), tok); !errors.Is(err, session.ErrInvalidToken) {
		t.Fatalf("wrong secret: got %v", err)
	}
	if _, err := m.Verify(context.Background(), "garbage"); !errors.Is(err, session.ErrInvalidToken) {
		t.Fatalf("garbage: got %v", err)
	}

	expired := session.NewManager("s3cret", -time.Minute, nil)
	old, _, _ := expired.Issue(domain.Identity{UserID: "u1"})
	if _, err := m.Verify(context.Background(), old); !errors.Is(err, session.ErrExpiredToken) {
		t.Fatalf("expired: got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	m := session.NewManager("s3cret", time.Hour, cache)
	ctx := context.Background()
	tok, _, _ := m.Issue(domain.Identity{UserID: "u1"})

	if err := m.Revoke(ctx, tok); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := m.Verify(ctx, tok); !errors.Is(err, session.ErrRevokedToken) {
		t.Fatalf("want revoked, got %v", err)
	}

	fresh, _, _ := m.Issue(domain.Identity{UserID: "u1"})
	if _, err := m.Verify(ctx, fresh); err != nil {
		t.Fatalf("other tokens stay valid: %v", err)
	}
}

func TestRevoke_WithoutCacheIsLocal(t *testing.T) {
	m := session.NewManager("s3cret", time.Hour, nil)
	ctx := context.Background()
	tok, _, _ := m.Issue(domain.Identity{UserID: "u1"})

	if err := m.Revoke(ctx, tok); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := m.Verify(ctx, tok); !errors.Is(err, session.ErrRevokedToken) {
		t.Fatalf("want revoked, got %v", err)
	}

	// another instance with the same secret has no record of the sign-out
	peer := session.NewManager("s3cret", time.Hour, nil)
	if _, err := peer.Verify(ctx, tok); err != nil {
		t.Fatalf("peer should still accept the token: %v", err)
	}
}
