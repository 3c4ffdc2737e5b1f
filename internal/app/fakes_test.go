package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"travelnest/internal/domain"
)

// ---- bundled catalog ----

type fakeBundled struct {
	hotels []domain.Hotel
	err    error
}

func (f fakeBundled) Load() ([]domain.Hotel, error) { return f.hotels, f.err }

// ---- event publisher ----

type recorder struct {
	mu  sync.Mutex
	evs []domain.BookingUpdated
	err error
}

func (r *recorder) PublishBookingUpdated(_ context.Context, ev domain.BookingUpdated) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evs = append(r.evs, ev)
	return r.err
}

func (r *recorder) events() []domain.BookingUpdated {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.BookingUpdated(nil), r.evs...)
}

// ---- cache (JSON round trip like Redis) ----

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	hits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *memCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	return nil
}

// ---- credential service ----

type fakeCreds struct {
	id       domain.Identity
	err      error
	resetErr error
	signouts int
	resets   []string
}

func (f *fakeCreds) SignIn(_ context.Context, email, _ string) (domain.Identity, error) {
	if f.err != nil {
		return domain.Identity{}, f.err
	}
	id := f.id
	id.Email = email
	return id, nil
}

func (f *fakeCreds) SignUp(_ context.Context, email, _, name string) (domain.Identity, error) {
	if f.err != nil {
		return domain.Identity{}, f.err
	}
	return domain.Identity{UserID: f.id.UserID, Email: email, DisplayName: name}, nil
}

func (f *fakeCreds) SignOut(context.Context, domain.Identity) error {
	f.signouts++
	return nil
}

func (f *fakeCreds) SendPasswordReset(_ context.Context, email string) error {
	f.resets = append(f.resets, email)
	return f.resetErr
}

// ---- booking lister ----

type fakeLister struct {
	mu    sync.Mutex
	byUsr map[string][]domain.Booking
	err   error
	calls int
}

func (f *fakeLister) ListBookingsForUser(_ context.Context, userID string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Booking(nil), f.byUsr[userID]...), nil
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
