// Package main provides the lounge server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/SEUB66/sofartist-lounge/internal/api/httpapi"
	"github.com/SEUB66/sofartist-lounge/internal/app/chat"
	"github.com/SEUB66/sofartist-lounge/internal/app/jukebox"
	"github.com/SEUB66/sofartist-lounge/internal/app/library"
	"github.com/SEUB66/sofartist-lounge/internal/app/presence"
	"github.com/SEUB66/sofartist-lounge/internal/app/session"
	"github.com/SEUB66/sofartist-lounge/internal/infra/config"
	"github.com/SEUB66/sofartist-lounge/internal/infra/logger"
	"github.com/SEUB66/sofartist-lounge/internal/infra/objstore"
	"github.com/SEUB66/sofartist-lounge/internal/infra/store"
)

var (
	app        = kingpin.New("lounge-server", "Sofartist lounge server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
)

// sessionPruneInterval is how often expired sessions are deleted.
const sessionPruneInterval = time.Hour

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	uploads, err := objstore.NewFromConfig(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to configure object storage: %w", err)
	}

	tracker := presence.NewTracker(cfg.PresenceTimeout())
	tracker.Start(cfg.PresenceSweep())
	defer tracker.Stop()

	sessions := session.NewManager(db, session.Config{
		TTL:             cfg.SessionTTL(),
		BcryptCost:      cfg.Auth.BcryptCost,
		RequirePassword: !cfg.Auth.AllowAnonymous,
	})

	api := httpapi.NewServer(httpapi.Deps{
		Sessions:   sessions,
		Presence:   tracker,
		Chat:       chat.NewService(db, cfg.Chat.DefaultLimit, cfg.Chat.MaxLimit),
		Library:    library.NewService(db),
		Jukebox:    jukebox.NewCoordinator(db),
		Uploads:    uploads,
		Store:      db,
		AdminToken: cfg.Auth.AdminToken,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Router(),
	}

	// Prune expired sessions in the background.
	pruneCtx, cancelPrune := context.WithCancel(context.Background())
	defer cancelPrune()
	go pruneSessions(pruneCtx, db)

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")
	return nil
}

// pruneSessions periodically deletes expired login sessions.
func pruneSessions(ctx context.Context, db *store.Store) {
	ticker := time.NewTicker(sessionPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.PruneSessions(ctx)
			if err != nil {
				zlog.Warn().Err(err).Msg("failed to prune sessions")
				continue
			}
			if n > 0 {
				zlog.Debug().Int64("count", n).Msg("pruned expired sessions")
			}
		}
	}
}
