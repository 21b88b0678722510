package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"livepoll/internal/config"
	"livepoll/internal/db"
	"livepoll/internal/metrics"
	"livepoll/internal/realtime"
	"livepoll/internal/router"
	"livepoll/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}

	// Initialize Database
	conn, err := db.Open(cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	if cfg.SeedAdmin() {
		if err := db.SeedAdmin(conn, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			slog.Error("Failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// The registry lives exactly as long as the server.
	registry := realtime.NewRegistry(m)
	dispatcher := realtime.NewDispatcher(registry, m)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	r.Use(sessions.Sessions(router.SessionName, router.NewSessionStore(cfg.SessionSecret, cfg.SecureCookies)))

	router.RegisterRoutes(r, router.Deps{
		Store:         storage.NewStore(conn),
		Dispatcher:    dispatcher,
		Metrics:       m,
		Gatherer:      reg,
		ChannelBuffer: cfg.ChannelBuffer,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("LivePoll server starting", "addr", srv.Addr, "database", cfg.DatabaseType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	// Hijacked websocket connections are not tracked by Shutdown.
	registry.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		sqlDB.Close()
	}
}
