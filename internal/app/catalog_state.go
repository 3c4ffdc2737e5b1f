package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"travelnest/internal/domain"
)

const (
	CategoryAll      = "All"
	recommendedCount = 5
	offerCount       = 3
)

// Categories offered to the category filter.
var Categories = []string{CategoryAll, "Luxury", "Business", "Resort", "Beach"}

// CatalogSnapshot is a consistent copy of the catalog state.
type CatalogSnapshot struct {
	All       []domain.Hotel `json:"all"`
	Featured  []domain.Hotel `json:"featured"`
	Popular   []domain.Hotel `json:"popular"`
	Loading   bool           `json:"loading"`
	LastError string         `json:"error,omitempty"`
}

// CatalogState holds the last resolved catalog and its derived views.
// Concurrent loads are not sequenced: whichever finishes last wins.
type CatalogState struct {
	repo *CatalogRepository

	mu       sync.RWMutex
	all      []domain.Hotel
	featured []domain.Hotel
	popular  []domain.Hotel
	loading  bool
	lastErr  string
}

func NewCatalogState(repo *CatalogRepository) *CatalogState {
	return &CatalogState{repo: repo}
}

// Load resolves the catalog remote-first. When the remote path fails the
// bundled catalog is shown instead (empty if that is unreadable too) and the
// cause is kept as the error message.
func (s *CatalogState) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	hotels, err := s.repo.FetchCatalog(ctx)
	msg := ""
	if err != nil {
		msg = domain.Cause(err).Error()
		log.Warn().Err(err).Msg("catalog fetch failed, using bundled catalog")
		local, lerr := s.repo.LoadBundledCatalog()
		if lerr != nil {
			log.Error().Err(lerr).Msg("bundled catalog unreadable")
			local = nil
		}
		hotels = local
	}

	s.mu.Lock()
	s.set(hotels)
	s.lastErr = msg
	s.loading = false
	s.mu.Unlock()
}

// set must be called with mu held.
func (s *CatalogState) set(hotels []domain.Hotel) {
	s.all = hotels
	s.featured = filterHotels(hotels, func(h domain.Hotel) bool { return h.IsFeatured })
	s.popular = filterHotels(hotels, func(h domain.Hotel) bool { return h.IsPopular })
}

func (s *CatalogState) Snapshot() CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CatalogSnapshot{
		All:       clone(s.all),
		Featured:  clone(s.featured),
		Popular:   clone(s.popular),
		Loading:   s.loading,
		LastError: s.lastErr,
	}
}

// Hotel finds a hotel in the loaded catalog.
func (s *CatalogState) Hotel(id string) (domain.Hotel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.all {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Hotel{}, false
}

// Recommended is a random sample of up to five hotels. Placeholder for a real
// recommender.
func (s *CatalogState) Recommended() []domain.Hotel {
	s.mu.RLock()
	all := clone(s.all)
	s.mu.RUnlock()
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if len(all) > recommendedCount {
		all = all[:recommendedCount]
	}
	return all
}

func (s *CatalogState) Filter(category, query string) []domain.Hotel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterHotels(s.all, category, query)
}

// SpecialOffers turns the first three featured hotels into 10/20/30 % offers.
func (s *CatalogState) SpecialOffers() []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := min(len(s.featured), offerCount)
	out := make([]domain.Offer, 0, n)
	for i, h := range s.featured[:n] {
		discount := (i + 1) * 10
		img := "hotel_placeholder"
		if len(h.Images) > 0 {
			img = h.Images[0]
		}
		out = append(out, domain.Offer{
			Title:       fmt.Sprintf("Special Offer %d", i+1),
			Description: fmt.Sprintf("Get %d%% off on %s", discount, h.Name),
			Image:       img,
			Discount:    discount,
			Hotel:       h,
		})
	}
	return out
}

// FilterHotels narrows by category first ("All" or "" keeps everything), then
// by a case-insensitive substring over name, location, description and category.
func FilterHotels(hotels []domain.Hotel, category, query string) []domain.Hotel {
	byCategory := hotels
	if category != "" && category != CategoryAll {
		byCategory = filterHotels(hotels, func(h domain.Hotel) bool { return h.Category == category })
	}
	q := strings.ToLower(query)
	if q == "" {
		return clone(byCategory)
	}
	return filterHotels(byCategory, func(h domain.Hotel) bool {
		return strings.Contains(strings.ToLower(h.Name), q) ||
			strings.Contains(strings.ToLower(h.Location), q) ||
			strings.Contains(strings.ToLower(h.Description), q) ||
			strings.Contains(strings.ToLower(h.Category), q)
	})
}

func filterHotels(in []domain.Hotel, keep func(domain.Hotel) bool) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(in))
	for _, h := range in {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
