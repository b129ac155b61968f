package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/skbsalatiga/signage-backend/internal/services"
)

// contentTables are cleared by clear-data; users are kept
var contentTables = []string{
	"staff_status",
	"announcements",
	"video_config",
	"video_playlist",
}

const usage = `Usage: maintenance [-database-url URL] <command> [args]

Commands:
  migrate                        apply schema migrations
  seed                           insert the seed content into empty tables
  clear-data                     delete all staff, announcements and videos
  create-user <name> <password>  create an admin user (bcrypt hashed)
  check-user <name> <password>   verify a user's password
  prune-video-configs [keep]     drop old video configs, keeping the newest
`

func main() {
	var dbURLFlag string
	flag.StringVar(&dbURLFlag, "database-url", "", "database connection string (overrides DATABASE_URL)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	// Build minimal database config without loading full app config
	dbCfg := config.DatabaseConfig{
		URL:                dbURL,
		Driver:             os.Getenv("DATABASE_DRIVER"),
		MaxConnections:     5,
		MaxIdleConnections: 2,
	}
	if dbCfg.Driver == "" {
		dbCfg.Driver = config.DriverFromURL(dbURL)
	}

	db, err := database.NewConnection(dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, db, args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, db *sqlx.DB, args []string) error {
	cmd, rest := args[0], args[1:]

	if cmd == "migrate" {
		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Println("Migrations applied.")
		return nil
	}

	// Every other command needs the schema
	if err := database.Migrate(db); err != nil {
		return err
	}
	store := database.NewSQLStore(db)

	switch cmd {
	case "seed":
		seed, err := config.LoadSeed(config.SeedConfig{File: os.Getenv("SEED_FILE")})
		if err != nil {
			return err
		}
		seeded, err := store.SeedIfEmpty(ctx, seed)
		if err != nil {
			return err
		}
		if seeded {
			fmt.Println("Seed content inserted.")
		} else {
			fmt.Println("Content tables are not empty, nothing seeded.")
		}
		return nil

	case "clear-data":
		return clearData(ctx, db)

	case "create-user":
		if len(rest) != 2 {
			return fmt.Errorf("create-user needs <name> <password>")
		}
		user, err := services.NewUserService(store).CreateUser(ctx, models.CreateUserRequest{
			Username: rest[0],
			Password: rest[1],
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Printf("Created user %q (id %d).\n", user.Username, user.ID)
		return nil

	case "check-user":
		if len(rest) != 2 {
			return fmt.Errorf("check-user needs <name> <password>")
		}
		user, err := services.NewUserService(store).CheckPassword(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("Password OK for %q (id %d).\n", user.Username, user.ID)
		return nil

	case "prune-video-configs":
		keep := config.DefaultKeepVideoConfigs
		if len(rest) > 0 {
			n, err := strconv.Atoi(rest[0])
			if err != nil || n < 1 {
				return fmt.Errorf("keep must be a positive integer, got %q", rest[0])
			}
			keep = n
		}

		logger := logrus.New()
		cron := services.NewCronService(store, config.CronConfig{KeepVideoConfigs: keep}, logger)
		removed, err := cron.RunPruneNow(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d old video configs, kept the newest %d.\n", removed, keep)
		return nil
	}

	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func clearData(ctx context.Context, db *sqlx.DB) error {
	fmt.Println("Connected to database. Clearing content tables...")

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range contentTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	fmt.Println("All content cleared.")

	// Verify by printing row counts for each table
	fmt.Println("Post-clear row counts:")
	for _, table := range contentTables {
		var count int
		if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			return fmt.Errorf("failed to count %s: %w", table, err)
		}
		fmt.Printf("  %-16s %d\n", table, count)
	}
	return nil
}
