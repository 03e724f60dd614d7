// Command ops performs one-off administrative tasks from the shell:
// seeding the activity catalog and creating users (the first admin has
// to come from somewhere).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/bfilipov/warehouse-game/internal/auth"
	"github.com/bfilipov/warehouse-game/internal/catalog"
	"github.com/bfilipov/warehouse-game/internal/config"
	"github.com/bfilipov/warehouse-game/internal/database"
	"github.com/bfilipov/warehouse-game/internal/models"
	"github.com/bfilipov/warehouse-game/internal/util"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ops [-config path] <seed|create-user> [flags]")
	os.Exit(2)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	cfg, err := config.Load(*configPath)
	util.MustSucceed("load config", err)

	ctx := context.Background()
	util.MustSucceed("create data dir", os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755))
	db, err := database.Open(ctx, cfg.Database.SQLitePath)
	util.MustSucceed("open database", err)
	defer func() {
		util.LogError("close database", db.Close())
	}()

	switch flag.Arg(0) {
	case "seed":
		util.MustSucceed("seed activity catalog", catalog.Seed(ctx, db))
		fmt.Println("catalog seeded")
	case "create-user":
		createUser(ctx, db, flag.Args()[1:])
	default:
		usage()
	}
}

func createUser(ctx context.Context, db *database.Database, args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	username := fs.String("username", "", "login name (required)")
	displayName := fs.String("display", "", "display name")
	email := fs.String("email", "", "email address")
	faculty := fs.String("faculty", "", "faculty number")
	admin := fs.Bool("admin", false, "grant admin access")
	manager := fs.Bool("manager", false, "grant manager role")
	cashier := fs.Bool("cashier", false, "grant cashier role")
	teamID := fs.Int64("team", 0, "assign to team id")
	util.MustSucceed("parse flags", fs.Parse(args))

	if *username == "" {
		fmt.Fprintln(os.Stderr, "create-user: -username is required")
		os.Exit(2)
	}

	password := promptPassword("Password: ")
	util.MustSucceed("validate password", auth.ValidatePassword(password))
	if promptPassword("Repeat password: ") != password {
		fmt.Fprintln(os.Stderr, "passwords do not match")
		os.Exit(1)
	}
	hash, err := auth.HashPassword(password)
	util.MustSucceed("hash password", err)

	user := models.User{
		Username:      *username,
		DisplayName:   *displayName,
		Email:         *email,
		FacultyNumber: *faculty,
		PasswordHash:  hash,
		IsAdmin:       *admin,
		IsManager:     *manager,
		IsCashier:     *cashier,
	}
	if *displayName == "" {
		user.DisplayName = *username
	}
	if *teamID != 0 {
		user.TeamID = util.Ptr(*teamID)
	}

	created, err := db.CreateUser(ctx, user)
	util.MustSucceed("create user", err)
	fmt.Printf("created user %s (id %d)\n", created.Username, created.ID)
}

func promptPassword(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	util.MustSucceed("read password", err)
	return strings.TrimSpace(string(pass))
}
