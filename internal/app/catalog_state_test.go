package app_test

import (
	"context"
	"errors"
	"testing"

	"travelnest/internal/app"
	"travelnest/internal/domain"
	"travelnest/internal/storage/memory"
)

func loadedState(t *testing.T, hotels []domain.Hotel) *app.CatalogState {
	t.Helper()
	st := memory.New()
	repo := app.NewCatalogRepository(st, nil, nil)
	if err := repo.Seed(context.Background(), hotels); err != nil {
		t.Fatal(err)
	}
	s := app.NewCatalogState(repo)
	s.Load(context.Background())
	return s
}

func TestCatalogState_LoadRemote(t *testing.T) {
	s := loadedState(t, app.SeedHotels())
	snap := s.Snapshot()
	if snap.Loading || snap.LastError != "" {
		t.Fatalf("unexpected state: loading=%v err=%q", snap.Loading, snap.LastError)
	}
	if len(snap.All) != 5 || len(snap.Featured) != 5 || len(snap.Popular) != 4 {
		t.Fatalf("all=%d featured=%d popular=%d", len(snap.All), len(snap.Featured), len(snap.Popular))
	}
}

func TestCatalogState_FallsBackToBundled(t *testing.T) {
	st := memory.New()
	st.FailWith = errors.New("network unreachable")
	bundledHotels := app.SeedHotels()[:2]
	s := app.NewCatalogState(app.NewCatalogRepository(st, fakeBundled{hotels: bundledHotels}, nil))

	s.Load(context.Background())
	snap := s.Snapshot()
	if len(snap.All) != 2 {
		t.Fatalf("want bundled hotels, got %d", len(snap.All))
	}
	if snap.LastError != "network unreachable" {
		t.Fatalf("want underlying cause as message, got %q", snap.LastError)
	}
	if snap.Loading {
		t.Fatalf("loading must be cleared")
	}
}

func TestCatalogState_BundledCorruptGivesEmptyList(t *testing.T) {
	st := memory.New()
	st.FailWith = errors.New("offline")
	s := app.NewCatalogState(app.NewCatalogRepository(st, fakeBundled{err: errors.New("bad json")}, nil))

	s.Load(context.Background())
	snap := s.Snapshot()
	if len(snap.All) != 0 || snap.LastError != "offline" {
		t.Fatalf("unexpected: %+v", snap)
	}
}

func TestCatalogState_Filter(t *testing.T) {
	s := loadedState(t, app.SeedHotels())

	cases := []struct {
		category, query string
		want            []string
	}{
		{"All", "", []string{"1", "2", "3", "4", "5"}},
		{"", "", []string{"1", "2", "3", "4", "5"}},
		{"Luxury", "", []string{"1", "4"}},
		{"Resort", "", []string{"3", "5"}},
		{"Beach", "", nil},
		{"All", "cox", []string{"1", "3"}},
		{"All", "DHAKA", []string{"2", "4"}},
		{"Resort", "mountain", []string{"5"}},
		{"Luxury", "mountain", nil},
		{"All", "resort", []string{"3", "5"}}, // matches category text too
		{"All", "   ", nil}, // whitespace is matched literally
	}
	for _, tc := range cases {
		got := s.Filter(tc.category, tc.query)
		if len(got) != len(tc.want) {
			t.Fatalf("%s/%q: want %v, got %d hotels", tc.category, tc.query, tc.want, len(got))
		}
		for i, h := range got {
			if h.ID != tc.want[i] {
				t.Fatalf("%s/%q: want %v, got id %s at %d", tc.category, tc.query, tc.want, h.ID, i)
			}
		}
	}
}

func TestCatalogState_Recommended(t *testing.T) {
	many := append(app.SeedHotels(), app.SeedHotels()...)
	for i := range many {
		many[i].ID = string(rune('a' + i))
	}
	s := loadedState(t, many)

	got := s.Recommended()
	if len(got) != 5 {
		t.Fatalf("want 5 recommendations, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, h := range got {
		if seen[h.ID] {
			t.Fatalf("duplicate recommendation %s", h.ID)
		}
		seen[h.ID] = true
	}

	few := loadedState(t, app.SeedHotels()[:3])
	if n := len(few.Recommended()); n != 3 {
		t.Fatalf("want all 3 hotels, got %d", n)
	}
}

func TestCatalogState_SpecialOffers(t *testing.T) {
	s := loadedState(t, app.SeedHotels())
	offers := s.SpecialOffers()
	if len(offers) != 3 {
		t.Fatalf("want 3 offers, got %d", len(offers))
	}
	for i, o := range offers {
		if o.Discount != (i+1)*10 {
			t.Fatalf("offer %d: discount %d", i, o.Discount)
		}
		if o.Image != o.Hotel.Images[0] {
			t.Fatalf("offer %d: image %q", i, o.Image)
		}
	}
	if offers[0].Description != "Get 10% off on Luxury Hotel & Spa" {
		t.Fatalf("unexpected description %q", offers[0].Description)
	}
}

func TestCatalogState_HotelLookup(t *testing.T) {
	s := loadedState(t, app.SeedHotels())
	if h, ok := s.Hotel("3"); !ok || h.Name != "Sea Pearl Beach Resort" {
		t.Fatalf("lookup: %+v %v", h, ok)
	}
	if _, ok := s.Hotel("nope"); ok {
		t.Fatalf("unexpected hit")
	}
}
