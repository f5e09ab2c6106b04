package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/config"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/logger"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `Usage: migrate <command> [arguments]

Commands:
  up              Apply all pending migrations
  down            Roll back the last migration
  step <n>        Apply n migrations (negative rolls back)
  version         Print the current migration version
  force <v>       Force the version without running migrations
  create <name>   Create a new migration file pair
  list            List available migrations

Flags:
  -path           Migrations directory (default "migrations")
`

func main() {
	path := flag.String("path", "migrations", "migrations directory")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	// create and list only touch the filesystem
	switch command {
	case "create":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		mf, err := migration.CreateMigration(*path, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Println("Created:")
		fmt.Println(" ", mf.UpPath)
		fmt.Println(" ", mf.DownPath)
		return
	case "list":
		migrations, err := migration.ListMigrations(*path)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, m := range migrations {
			fmt.Println(m)
		}
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		_ = migrator.Close()
	}()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
	case "step":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "step requires a count")
			os.Exit(2)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid step count:", args[1])
			os.Exit(2)
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("Failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "force requires a version")
			os.Exit(2)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid version:", args[1])
			os.Exit(2)
		}
		if err := migrator.Force(v); err != nil {
			log.Fatal("Force failed", zap.Error(err))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
