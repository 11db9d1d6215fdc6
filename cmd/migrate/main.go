package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const usage = `usage: migrate [flags] <up|down|seed|status>

  up      apply every pending migration
  down    roll back every migration
  seed    load the SQL seed files
  status  print the current migration version
`

func main() {
	migrationsDir := flag.String("migrations", "db/migrations", "directory holding the SQL migrations")
	seedsDir := flag.String("seeds", "db/seeds", "directory holding the SQL seed files")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not read .env file: %v", err)
	}

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db).WithPaths(*migrationsDir, *seedsDir)
	if err := runner.WaitForDatabase(); err != nil {
		log.Fatalf("Database is not reachable: %v", err)
	}

	switch command := flag.Arg(0); command {
	case "up":
		err = runner.RunMigrations()
	case "down":
		err = runner.Down()
	case "seed":
		err = runner.LoadSeeds()
	case "status":
		var version uint
		var dirty bool
		version, dirty, err = runner.GetMigrationStatus()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("No migrations applied")
			return
		}
		if err == nil {
			log.Printf("Migration version %d (dirty: %t)", version, dirty)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("migrate %s failed: %v", flag.Arg(0), err)
	}
}
