package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
	"github.com/bfilipov/warehouse-game/internal/notifier"
	"github.com/bfilipov/warehouse-game/internal/server"
	"github.com/bfilipov/warehouse-game/internal/util"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	util.MustSucceed("load config", err)
	util.MustSucceed("validate config", cfg.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.MustSucceed("create data dir", os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755))
	db, err := database.Open(ctx, cfg.Database.SQLitePath)
	util.MustSucceed("open database", err)
	defer func() {
		util.LogError("close database", db.Close())
	}()
	util.MustSucceed("seed activity catalog", catalog.Seed(ctx, db))

	eng := engine.New(db, cfg.Rules)
	if cfg.Telegram.BotToken != "" {
		tg, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		util.MustSucceed("connect telegram", err)
		eng.WithNotifier(tg)
	} else {
		eng.WithNotifier(notifier.Noop{})
	}

	handler, err := server.NewHandler(server.Options{
		Store:  db,
		Engine: eng,
		Logger: log.Default(),
	})
	util.MustSucceed("build handler", err)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		util.LogError("shutdown", srv.Shutdown(shutdownCtx))
	}()

	log.Printf("listening on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}
