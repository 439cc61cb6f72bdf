// gradjobs: UK graduate job board and application tracker.
//
// Serves:
//   - server-rendered pages (tracker, job detail, applications)
//   - a JSON API under /api
//   - the gradjobs.Board gRPC service
//   - live tracker events over /ws, mirrored to Redis when REDIS_URL is set
//
// Tracker state is per browser session and lives in memory only.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"gradjobs/internal/board"
	"gradjobs/internal/catalog"
	"gradjobs/internal/config"
	"gradjobs/internal/db"
	"gradjobs/internal/events"
	"gradjobs/internal/grpcserver"
	"gradjobs/internal/scheduler"
	"gradjobs/internal/session"
	"gradjobs/internal/web"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[gradjobs] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Catalog ─────────────────────────────────────────────────────────────
	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("[gradjobs] Catalog: %v", err)
	}
	log.Printf("[gradjobs] Catalog loaded from %s: %d posting(s) ✓", cfg.CatalogSource, cat.Len())

	// ── Events ──────────────────────────────────────────────────────────────
	hub := events.NewHub()
	notifiers := events.Multi{hub}

	if cfg.RedisURL != "" {
		log.Println("[gradjobs] Connecting to Redis…")
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[gradjobs] Redis: %v", err)
		}
		defer rdb.Close()
		notifiers = append(notifiers, events.NewRedisPublisher(rdb))
		log.Println("[gradjobs] Redis connected ✓")
	}

	sessions := session.NewRegistry()
	svc := board.NewService(cat, sessions, notifiers)

	// ── HTTP server ─────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	board.NewHandler(svc).RegisterRoutes(mux)

	pages, err := web.NewHandler(svc, hub, cfg.CookieSecure)
	if err != nil {
		log.Fatalf("[gradjobs] Templates: %v", err)
	}
	pages.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[gradjobs] v%s HTTP listening on :%s", version, cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[gradjobs] HTTP server error: %v", err)
		}
	}()

	// ── gRPC server ─────────────────────────────────────────────────────────
	var grpcSrv *grpc.Server
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
		if err != nil {
			log.Fatalf("[gradjobs] gRPC listen: %v", err)
		}
		grpcSrv = grpc.NewServer()
		grpcserver.RegisterBoardServer(grpcSrv, grpcserver.NewServer(svc))

		go func() {
			log.Printf("[gradjobs] gRPC listening on :%s", cfg.GRPCPort)
			if err := grpcSrv.Serve(lis); err != nil {
				log.Fatalf("[gradjobs] gRPC server error: %v", err)
			}
		}()
	}

	// ── Scheduler ───────────────────────────────────────────────────────────
	sched := scheduler.New(sessions, svc, scheduler.Config{
		IdleTimeout:   cfg.SessionIdleTimeout,
		SweepInterval: cfg.SessionSweepInterval,
		DigestSpec:    cfg.DigestCron,
	})
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[gradjobs] Scheduler: %v", err)
	}

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[gradjobs] Shutting down…")
	sched.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[gradjobs] Shutdown error: %v", err)
	}
	log.Println("[gradjobs] Stopped.")
}

// loadCatalog reads the postings from the configured source.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceFile:
		return catalog.LoadFile(cfg.CatalogFile)
	case config.SourcePostgres:
		log.Println("[gradjobs] Connecting to PostgreSQL…")
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return catalog.LoadPostgres(ctx, pool)
	default:
		return catalog.LoadEmbedded()
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "gradjobs",
		"version": version,
	})
}
