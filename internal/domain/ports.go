package domain

import (
	"context"
	"time"
)

// Document is a schemaless record; timestamps are stored as time.Time.
type Document map[string]any

// Snapshot is a document together with its key.
type Snapshot struct {
	ID   string
	Data Document
}

// DocumentStore is a remote key-document database addressed by collection and id.
type DocumentStore interface {
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Set replaces the whole document.
	Set(ctx context.Context, collection, id string, doc Document) error
	List(ctx context.Context, collection string) ([]Snapshot, error)
	QueryEqual(ctx context.Context, collection, field string, value any) ([]Snapshot, error)
}

// CredentialService is the opaque identity provider.
type CredentialService interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (Identity, error)
	SignOut(ctx context.Context, id Identity) error
	SendPasswordReset(ctx context.Context, email string) error
}

type BundledCatalog interface {
	Load() ([]Hotel, error)
}

type EventPublisher interface {
	PublishBookingUpdated(ctx context.Context, ev BookingUpdated) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Clock is injected where tests need fixed timestamps.
type Clock func() time.Time
