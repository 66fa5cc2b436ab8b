package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	adapthttp "taskhub/internal/adapter/http"
	"taskhub/internal/adapter/jsonfile"
	"taskhub/internal/adapter/postgres"
	"taskhub/internal/app"
	"taskhub/internal/domain"
)

func main() {
	addr := env("ADDR", ":3000")
	dataDir := env("DATA_DIR", "data")
	sessionsDir := env("SESSIONS_DIR", "sessions")

	var (
		taskRepo    domain.TaskRepository
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
	)

	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		taskRepo = db
		userRepo = postgres.NewUserRepo(db)
		sessionRepo = postgres.NewSessionRepo(db)
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			log.Fatalf("data dir: %v", err)
		}
		sr, err := jsonfile.NewSessionRepo(sessionsDir)
		if err != nil {
			log.Fatalf("session store: %v", err)
		}
		taskRepo = jsonfile.NewTaskRepo(dataDir)
		userRepo = jsonfile.NewUserRepo(dataDir)
		sessionRepo = sr
	}

	taskSvc := app.NewTaskService(taskRepo)
	authSvc := app.NewAuthService(userRepo, sessionRepo)

	var oidcCfg adapthttp.OIDCConfig
	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		cfg, err := adapthttp.NewOIDCConfig(context.Background(), issuer,
			os.Getenv("OIDC_CLIENT_ID"), os.Getenv("OIDC_CLIENT_SECRET"), os.Getenv("OIDC_REDIRECT_URL"))
		if err != nil {
			log.Fatalf("oidc: %v", err)
		}
		oidcCfg = cfg
	}

	srv, err := adapthttp.New(taskSvc, authSvc, oidcCfg)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	// TTL eviction of session records.
	go func() {
		for range time.Tick(10 * time.Minute) {
			if err := authSvc.SweepExpiredSessions(context.Background()); err != nil {
				log.Printf("session sweep: %v", err)
			}
		}
	}()

	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
