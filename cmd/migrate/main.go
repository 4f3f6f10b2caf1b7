package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tutordesk/tutordesk/internal/config"
	"github.com/tutordesk/tutordesk/internal/logger"
	"github.com/tutordesk/tutordesk/internal/postgres"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: migrate [-steps n] up|down|steps|version\n")
	flag.PrintDefaults()
}

func main() {
	steps := flag.Int("steps", 1, "Number of migrations to apply with the steps command, negative to revert")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	migrator, err := postgres.NewMigrator(db, logger)
	if err != nil {
		logger.Fatalw("Failed to create migrator", "error", err)
	}

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		err = migrator.Steps(*steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrator.Version()
		if err == nil {
			fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatalw("Migration failed", "command", command, "error", err)
	}
	logger.Infow("Migration completed", "command", command)
}
