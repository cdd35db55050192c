// Package gateway assembles the whitelist interactions server: config,
// logging, database, console and Xbox clients, the service pipeline and the
// HTTP surface.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/pkg/app"
	apphttp "github.com/angelsmp/discord-whitelist/pkg/app/http"
	"github.com/angelsmp/discord-whitelist/pkg/auth"
	"github.com/angelsmp/discord-whitelist/pkg/config"
	"github.com/angelsmp/discord-whitelist/pkg/console"
	"github.com/angelsmp/discord-whitelist/pkg/pgutil"
	"github.com/angelsmp/discord-whitelist/pkg/whitelist/service"
	"github.com/angelsmp/discord-whitelist/pkg/whiteliststore"
	"github.com/angelsmp/discord-whitelist/pkg/xbox"
)

// Server is the gateway application
type Server struct {
	cfg *config.Config
}

// New creates the gateway server from loaded configuration
func New(cfg *config.Config) app.Runner {
	return &Server{cfg: cfg}
}

// Run wires the components together and serves until interrupted.
// The console is an optional dependency: a missing password or a failed
// dial degrades whitelist dispatch instead of preventing startup.
func (s *Server) Run() error {
	logger, err := config.NewLogger(s.cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting whitelist gateway",
		zap.String("host", s.cfg.Server.Host),
		zap.Int("port", s.cfg.Server.Port),
	)

	verifier, err := auth.NewVerifier(s.cfg.Discord.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid interaction public key: %w", err)
	}

	db, err := pgutil.ConnectDB(&s.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store := whiteliststore.NewStore(db)

	var con console.Console
	switch {
	case !s.cfg.ConsoleEnabled():
		logger.Warn("Remote console disabled: no password configured")
		con = console.Disabled()
	default:
		client, err := console.Dial(&s.cfg.Console, logger)
		if err != nil {
			// The gateway still serves interactions; dispatches degrade to
			// the support reply until the process is restarted.
			logger.Error("Console dial failed, whitelist dispatch degraded", zap.Error(err))
			con = console.Disabled()
		} else {
			defer client.Close()
			con = client
		}
	}

	lookup := xbox.NewClient(&s.cfg.Xbox, logger)

	svc := service.NewLog(
		service.NewService(store, con, lookup, s.cfg.Whitelist.Cooldown, s.cfg.Discord.HelpChannelID, logger),
		logger,
	)
	handler := service.NewHandler(verifier, svc, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return apphttp.ServeAndWait(ctx, r, logger, &s.cfg.Server)
}
