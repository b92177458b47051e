package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alehernandezlabs/trade-notifier/internal/config"
	"github.com/alehernandezlabs/trade-notifier/internal/logger"
	"github.com/alehernandezlabs/trade-notifier/internal/storage"
	"github.com/alehernandezlabs/trade-notifier/internal/telegram"
	"github.com/alehernandezlabs/trade-notifier/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.IsLocal() {
		log, err = logger.NewLocal(cfg.Logging.Level, cfg.Logging.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
			os.Exit(1)
		}
	} else {
		log = logger.New(cfg.Logging.Level)
	}

	log.Info("starting trade-notifier", "env", cfg.Env)

	// Activity log only runs in local mode
	var repo *storage.Repository
	if cfg.IsLocal() {
		db, err := storage.NewDatabase(cfg.Storage.Path)
		if err != nil {
			log.Error("database init failed", "error", err)
			os.Exit(1)
		}
		repo = storage.NewRepository(db)
	}

	notifier, err := telegram.NewNotifier(cfg, log)
	if err != nil {
		log.Error("telegram init failed", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(notifier, repo, cfg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("http server error", "error", err)
		}
	}()

	if err := notifier.Send(fmt.Sprintf("🤖 Trade notifier started (%s)", cfg.Env)); err != nil {
		log.Warn("startup notification failed", "error", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", "error", err)
	}

	if err := notifier.Send("🛑 Trade notifier stopped"); err != nil {
		log.Warn("shutdown notification failed", "error", err)
	}
	log.Info("trade-notifier stopped")
}
