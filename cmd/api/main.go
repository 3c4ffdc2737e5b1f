package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travelnest/internal/adapters/bundled"
	server "travelnest/internal/adapters/http_server"
	"travelnest/internal/adapters/identity"
	"travelnest/internal/adapters/kafka"
	"travelnest/internal/adapters/localauth"
	"travelnest/internal/adapters/observability"
	redisad "travelnest/internal/adapters/redis"
	"travelnest/internal/adapters/session"
	"travelnest/internal/app"
	"travelnest/internal/domain"
	"travelnest/internal/shared"
	"travelnest/internal/storage"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store failed")
	}
	defer func() { _ = closeStore() }()

	// cache (optional)
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, continuing without cache")
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	// events
	broadcaster := app.NewBroadcaster()
	var events domain.EventPublisher = broadcaster
	if cfg.KafkaBroker != "" {
		pub := kafka.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer pub.Close()
		events = app.FanOut{broadcaster, pub}

		relay := kafka.NewRelay(cfg.KafkaBroker, cfg.KafkaTopic, "travelnest-api-"+uuid.NewString(), broadcaster)
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Error().Err(err).Msg("booking event relay stopped")
			}
		}()
	}

	// credentials
	var creds domain.CredentialService
	if cfg.IdentityKey != "" {
		c, err := identity.New(cfg.IdentityBase, cfg.IdentityKey, cfg.IdentityRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize identity client")
		}
		creds = c
	} else {
		creds = localauth.New(store)
	}

	// deps
	repo := app.NewCatalogRepository(store, bundled.FromPath(cfg.BundledCatalogPath), events)
	catalog := app.NewCatalogState(repo)
	catalog.Load(ctx)
	q := app.NewQueryService(repo, catalog, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.AllowedOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:  catalog,
		Q:        q,
		Auth:     app.NewAuthService(creds, store),
		Bookings: app.NewBookingService(q, repo),
		Repo:     repo,
		Tokens:   session.NewManager(cfg.JWTSecret, cfg.JWTTTL, cache),
		Events:   broadcaster,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreDriver).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
