package main

import (
	"context"
	"flag"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travelnest/internal/adapters/bundled"
	"travelnest/internal/adapters/observability"
	"travelnest/internal/app"
	"travelnest/internal/domain"
	"travelnest/internal/shared"
	"travelnest/internal/storage"
)

func main() {
	withBundled := flag.Bool("bundled", false, "also write the bundled catalog")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("store", cfg.StoreDriver).
		Int("workers", cfg.SeedWorkers).
		Bool("bundled", *withBundled).
		Msg("seeder starting")

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	defer func() { _ = closeStore() }()

	loader := bundled.FromPath(cfg.BundledCatalogPath)
	repo := app.NewCatalogRepository(store, loader, nil)

	hotels := app.SeedHotels()
	if *withBundled {
		extra, err := repo.LoadBundledCatalog()
		if err != nil {
			log.Fatal().Err(err).Msg("bundled catalog unreadable")
		}
		hotels = merge(hotels, extra)
	}

	workers := cfg.SeedWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, h := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.SeedHotel(ctx, h); err != nil {
				failed.Add(1)
				log.Warn().Str("id", h.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("id", h.ID).Str("name", h.Name).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("seeding incomplete")
	}
	log.Info().Int("hotels", len(hotels)).Msg("seeding completed")
}

// merge keeps the first hotel seen for each id.
func merge(a, b []domain.Hotel) []domain.Hotel {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]domain.Hotel, 0, len(a)+len(b))
	for _, h := range append(append([]domain.Hotel{}, a...), b...) {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out
}
