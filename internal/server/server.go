package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/izzyreal/raincast/internal/auth"
	"github.com/izzyreal/raincast/internal/config"
	"github.com/izzyreal/raincast/internal/features"
	"github.com/izzyreal/raincast/internal/model"
	"github.com/izzyreal/raincast/internal/store"
)

const modelVersionStateKey = "model.version"

// app holds everything the handlers share.
type app struct {
	cfg       config.File
	db        *store.Store
	users     *auth.Service
	catalog   features.Catalog
	predictor model.Predictor
}

func newApp(cfg config.File, db *store.Store) *app {
	catalog := features.Default()
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	return &app{
		cfg:       cfg,
		db:        db,
		users:     auth.NewService(db, tokens),
		catalog:   catalog,
		predictor: model.NewRuleModel(catalog, cfg.Model.Version, cfg.Model.RainThreshold, cfg.Model.MaxConfidence),
	}
}

// Run serves HTTP (and gRPC health when configured) until ctx is done.
func Run(ctx context.Context, cfg config.File) error {
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		slog.Warn("using the built-in session secret; set RAINCAST_JWT_SECRET for real deployments")
	}
	db, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	a := newApp(cfg, db)
	a.recordModelVersion()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           buildRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopGRPC := func() {}
	if cfg.Server.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		stopGRPC = startGRPCServer(ctx, lis, a)
	}
	defer stopGRPC()

	stopMDNS := func() {}
	if cfg.MDNS.Enable {
		stopMDNS = startMDNSAdvertiser(cfg.Server.Addr, cfg.MDNS.Instance)
	}
	defer stopMDNS()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("raincast server started", "addr", cfg.Server.Addr, "db", cfg.Server.DBPath, "model_version", cfg.Model.Version)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		slog.Info("raincast server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		slog.Info("raincast server stopped")
		return nil
	}
}

// recordModelVersion notes model upgrades between restarts.
func (a *app) recordModelVersion() {
	current := a.cfg.Model.Version
	prev, ok, err := a.db.GetAppState(modelVersionStateKey)
	if err != nil {
		slog.Warn("read model version state failed", "error", err)
		return
	}
	if ok && prev != current {
		slog.Info("model version changed", "previous", prev, "current", current)
	}
	if !ok || prev != current {
		if err := a.db.SetAppState(modelVersionStateKey, current); err != nil {
			slog.Warn("persist model version state failed", "error", err)
		}
	}
}
