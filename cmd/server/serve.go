package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/request-board/internal/config"
	"github.com/yukikurage/request-board/internal/database"
	"github.com/yukikurage/request-board/internal/logging"
	"github.com/yukikurage/request-board/internal/metrics"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/server"
	"github.com/yukikurage/request-board/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	board, err := openBoard(cfg, log)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(registry)
	detach := recorder.Attach(board.Requests)
	defer detach()

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Deps{
		Board:        board,
		SessionStore: store,
		Gatherer:     registry,
		Log:          log,
	})

	log.WithField("addr", cfg.HTTPAddr).Info("Server starting")
	if err := server.Serve(ctx, cfg.HTTPAddr, router); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

func loadConfig() (*config.Config, *logrus.Entry, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	return cfg, logging.New(cfg.AppEnv, cfg.LogLevel), nil
}

// openBoard connects durable storage and loads the board from it.
func openBoard(cfg *config.Config, log *logrus.Entry) (*services.Board, error) {
	var durable repository.KVRepository
	if cfg.DBDriver == "memory" {
		log.Warn("Using in-memory storage; data is lost on exit")
		durable = repository.NewMemoryKVRepository()
	} else {
		if err := database.Connect(cfg, log); err != nil {
			return nil, err
		}
		if err := database.Migrate(log); err != nil {
			return nil, err
		}
		durable = repository.NewKVRepository(database.GetDB())
	}

	opts := services.BoardOptions{AdminSecret: cfg.AdminSecret}
	if cfg.OpenAIAPIKey != "" {
		opts.Drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	board, err := services.NewBoard(durable, opts, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open board: %w", err)
	}
	return board, nil
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,    // pool size
			"tcp", // network type
			redisAddr,
			"", // username
			"", // password
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
