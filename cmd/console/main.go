package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/console"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/engine"
	"github.com/bfilipov/warehouse-game/internal/util"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	util.MustSucceed("load config", err)
	util.MustSucceed("validate config", cfg.Validate())

	ctx := context.Background()
	util.MustSucceed("create data dir", os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755))
	db, err := database.Open(ctx, cfg.Database.SQLitePath)
	util.MustSucceed("open database", err)
	defer func() {
		util.LogError("close database", db.Close())
	}()
	util.MustSucceed("seed activity catalog", catalog.Seed(ctx, db))

	model := console.New(ctx, db, engine.New(db, cfg.Rules))
	p := tea.NewProgram(model)
	_, err = p.Run()
	util.MustSucceed("run console", err)
}
