package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/diewo77/exportdocs/internal/config"
	"github.com/diewo77/exportdocs/internal/db"
	"github.com/diewo77/exportdocs/internal/render"
	"github.com/diewo77/exportdocs/internal/server"
	"github.com/diewo77/exportdocs/internal/services"
	"github.com/diewo77/exportdocs/internal/store"
)

// simple middleware chain
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}

	logger, err := zap.NewProduction()
	if cfg.Env == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	filler := &render.Filler{
		TemplateDir: cfg.TemplateDir,
		OutputDir:   cfg.OutputDir,
		Strict:      cfg.StrictTemplates,
	}
	if cfg.PDFCommand != "" {
		filler.PDF = &render.ExecEngine{Command: cfg.PDFCommand}
	}

	st := store.New(dbConn)
	svc := services.NewDocumentService(st, filler, logger)

	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: withLogging(server.New(dbConn, svc, logger))}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server exited")
}
