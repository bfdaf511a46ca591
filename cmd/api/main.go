package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/config"
	"github.com/rfalmeida/facility-control/internal/db"
	"github.com/rfalmeida/facility-control/internal/repo"
	"github.com/rfalmeida/facility-control/internal/scheduler"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("JWT_SECRET must be set in prod")
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	slog.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if cfg.SummaryCron != "" {
		startSummary(database, cfg)
	}

	handler := newRouter(database, cfg)

	addr := ":" + cfg.Port
	slog.Info("starting api", "addr", addr, "env", cfg.Env)
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, handler)
	} else {
		err = http.ListenAndServe(addr, handler)
	}
	log.Fatal(err)
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

// startSummary wires the daily security summary job to the seeded system
// actor. A missing actor disables the job rather than failing startup.
func startSummary(database *sql.DB, cfg config.Config) {
	userRepo := repo.NewUserRepo(database)
	actor, err := userRepo.GetByEmail(context.Background(), cfg.SummaryActorEmail)
	if err != nil {
		slog.Warn("summary actor not found, daily summary disabled",
			"email", cfg.SummaryActorEmail, "error", err)
		return
	}

	activityRepo := repo.NewActivityRepo(database)
	summary := &scheduler.Summary{
		Stats:   repo.NewStatsRepo(database),
		Auditor: access.NewAuditor(activityRepo, nil),
		ActorID: actor.ID,
		Logger:  slog.Default(),
	}
	if _, err := summary.Start(cfg.SummaryCron); err != nil {
		slog.Warn("daily summary disabled", "error", err)
	}
}
