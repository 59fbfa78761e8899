package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/auth"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/config"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/notify"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/report"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/server"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/service"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage/sqlite"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authn := auth.NewPINAuthenticator(store)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	groups := service.NewGroupService(store)
	if err := seedAdmin(ctx, cfg, authn, groups); err != nil {
		slog.Error("Failed to seed default admin", "error", err)
		os.Exit(1)
	}

	rounds := service.NewRoundService(store)
	ledger := service.NewLedgerService(store, rounds, notify.NewSMSSimulator(), notify.NewStubMobileMoney())

	srv := server.New(
		authn,
		tokens,
		groups,
		service.NewMemberService(store),
		rounds,
		ledger,
		report.NewExporter(store),
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(srv.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// seedAdmin creates the default admin user and their group on first run so a
// fresh deployment is immediately usable. Reruns are no-ops.
func seedAdmin(ctx context.Context, cfg *config.Config, authn auth.Authenticator, groups *service.GroupService) error {
	if cfg.AdminPhone == "" {
		return nil
	}

	_, err := authn.Register(ctx, cfg.AdminPhone, cfg.AdminPIN, cfg.AdminGroup, models.RoleAdmin)
	switch {
	case err == nil:
		slog.Info("Default admin created", "phone", cfg.AdminPhone, "group", cfg.AdminGroup)
	case errors.Is(err, auth.ErrPhoneExists):
		return nil
	default:
		return err
	}

	if _, err := groups.CreateGroup(ctx, cfg.AdminGroup, cfg.AdminGroup, cfg.AdminPhone); err != nil &&
		!errors.Is(err, service.ErrGroupExists) {
		return err
	}
	return nil
}
