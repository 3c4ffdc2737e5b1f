// Package identity talks to an Identity Toolkit style credential provider over REST.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"travelnest/internal/adapters/observability"
	"travelnest/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type authResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Identity, error) {
	var out authResponse
	err := c.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email": email, "password": password, "returnSecureToken": true,
	}, &out)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: out.LocalID, Email: out.Email, DisplayName: out.DisplayName}, nil
}

// SignUp creates the account and then sets its display name. A failed
// display name update is logged; the account already exists by then.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (domain.Identity, error) {
	var out authResponse
	err := c.post(ctx, "accounts:signUp", map[string]any{
		"email": email, "password": password, "returnSecureToken": true,
	}, &out)
	if err != nil {
		return domain.Identity{}, err
	}
	id := domain.Identity{UserID: out.LocalID, Email: out.Email}
	if displayName == "" {
		return id, nil
	}
	err = c.post(ctx, "accounts:update", map[string]any{
		"idToken": out.IDToken, "displayName": displayName, "returnSecureToken": false,
	}, nil)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id.UserID).Msg("display name update failed")
		return id, nil
	}
	id.DisplayName = displayName
	return id, nil
}

// SignOut has nothing to tell the provider; tokens are revoked by the session layer.
func (c *Client) SignOut(ctx context.Context, id domain.Identity) error {
	log.Debug().Str("user_id", id.UserID).Msg("identity sign-out")
	return nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET", "email": email,
	}, nil)
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("identity: unauthorized")
	ErrForbidden    = errors.New("identity: forbidden")
)

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// post sends one JSON request with client-side rate limiting. No retries:
// a failed call surfaces to the caller as is.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	target := c.base + "/" + endpoint + "?" + url.Values{"key": {c.key}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "travelnest/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("identity", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("identity", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)

	case http.StatusBadRequest:
		var pe providerError
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(b, &pe); err != nil || pe.Error.Message == "" {
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
		return domain.CredentialError(describe(pe.Error.Message))

	case http.StatusUnauthorized:
		return ErrUnauthorized

	case http.StatusForbidden:
		return ErrForbidden

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// describe turns a provider error code into a message fit for the user.
// Codes may carry a suffix such as "WEAK_PASSWORD : Password should be ...".
func describe(code string) string {
	head, _, _ := strings.Cut(code, " ")
	switch head {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return "Invalid email or password."
	case "USER_DISABLED":
		return "This account has been disabled."
	case "EMAIL_EXISTS":
		return "The email address is already in use by another account."
	case "INVALID_EMAIL":
		return "The email address is badly formatted."
	case "WEAK_PASSWORD":
		return "The password must be 6 characters long or more."
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return "Too many attempts. Please try again later."
	default:
		return strings.ReplaceAll(strings.ToLower(head), "_", " ")
	}
}
