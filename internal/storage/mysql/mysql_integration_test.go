//go:build integration

package mysql_test

import (
	"context"
	"errors"
	"testing"

	"travelnest/internal/domain"
	mysqlstore "travelnest/internal/storage/mysql"
	"travelnest/internal/storage/mysql/mysqltest"
)

// ---------- the test ----------

func TestStore_MySQL_UpsertAndQuery(t *testing.T) {
	store := mysqlstore.New(mysqltest.Start(t))
	ctx := context.Background()

	if _, err := store.Get(ctx, "hotels", "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// Set twice under the same id: the second write wins.
	if err := store.Set(ctx, "hotels", "1", domain.Document{"name": "Old", "price": 10}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "hotels", "1", domain.Document{"name": "Luxury Hotel & Spa", "price": 199.99}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	hotels, err := store.List(ctx, "hotels")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Data["name"] != "Luxury Hotel & Spa" {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}

	for id, user := range map[string]string{"b1": "u1", "b2": "u2", "b3": "u1"} {
		if err := store.Set(ctx, "bookings", id, domain.Document{"user_id": user}); err != nil {
			t.Fatalf("Set booking: %v", err)
		}
	}
	mine, err := store.QueryEqual(ctx, "bookings", "user_id", "u1")
	if err != nil {
		t.Fatalf("QueryEqual: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "b1" || mine[1].ID != "b3" {
		t.Fatalf("unexpected bookings: %+v", mine)
	}
}
