// Package firestore is the hosted DocumentStore backend.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"travelnest/internal/domain"
)

type Store struct {
	Client *firestore.Client
}

// New connects to projectID. FIRESTORE_EMULATOR_HOST is honored by the client.
func New(ctx context.Context, projectID string) (*Store, error) {
	c, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Store{Client: c}, nil
}

func (s *Store) Close() error { return s.Client.Close() }

func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	if id == "" {
		return nil, errors.New("firestore: id is empty")
	}
	snap, err := s.Client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, domain.ErrNotFound)
		}
		return nil, err
	}
	return domain.Document(snap.Data()), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc domain.Document) error {
	_, err := s.Client.Collection(collection).Doc(id).Set(ctx, map[string]any(doc))
	return err
}

func (s *Store) List(ctx context.Context, collection string) ([]domain.Snapshot, error) {
	snaps, err := s.Client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return toSnapshots(snaps), nil
}

func (s *Store) QueryEqual(ctx context.Context, collection, field string, value any) ([]domain.Snapshot, error) {
	snaps, err := s.Client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return toSnapshots(snaps), nil
}

func toSnapshots(in []*firestore.DocumentSnapshot) []domain.Snapshot {
	out := make([]domain.Snapshot, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Snapshot{ID: s.Ref.ID, Data: domain.Document(s.Data())})
	}
	return out
}
