package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/deliveries/internal/api"
	"example.com/deliveries/internal/auth"
	"example.com/deliveries/internal/config"
	"example.com/deliveries/internal/feed"
	"example.com/deliveries/internal/session"
	"example.com/deliveries/internal/store"
	filestore "example.com/deliveries/internal/store/file"
	pgstore "example.com/deliveries/internal/store/postgres"
	sheetstore "example.com/deliveries/internal/store/sheet"
	httptransport "example.com/deliveries/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backing, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreKind, err)
	}
	defer cleanup()

	opts := []session.Option{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := feed.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		opts = append(opts, session.WithPublisher(producer))
	}

	controller := session.New(store.NewCached(backing), opts...)
	if err := controller.Init(ctx); err != nil {
		log.Fatalf("failed to load delivery table: %v", err)
	}
	log.Printf("session %s loaded from %s store", controller.ID(), cfg.StoreKind)

	handler := api.NewHandler(controller)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	authMiddleware := auth.NewMiddleware(
		auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer},
		func(r *http.Request) bool {
			return r.URL.Path == "/healthz" || r.URL.Path == "/metrics"
		},
	)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, authMiddleware.Wrap(logger(mux)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("deliveries api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func buildStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreKind {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, func() {}, err
		}
		st := pgstore.New(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		return st, pool.Close, nil
	case config.StoreSheet:
		st := sheetstore.New(sheetstore.Config{
			BaseURL:       cfg.SheetBaseURL,
			SpreadsheetID: cfg.SheetID,
			Range:         cfg.SheetRange,
			Token:         cfg.SheetToken,
		})
		return st, func() {}, nil
	default:
		return filestore.New(cfg.DataFile), func() {}, nil
	}
}
