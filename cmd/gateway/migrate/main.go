package main

import (
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/angelsmp/discord-whitelist/pkg/config"
	"github.com/angelsmp/discord-whitelist/pkg/migrations/whitelistdb"
	"github.com/angelsmp/discord-whitelist/pkg/pgutil"
	mghelper "github.com/angelsmp/discord-whitelist/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	// Connect to database
	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for whitelist database (%s)...\n", cfg.Database.Database)

	// Create migrator
	migrator := migrate.NewMigrator(db, whitelistdb.Migrations)

	// Run migrations with args
	err = mghelper.RunMigrations(migrator, flag.Args()...)
	if err != nil {
		mghelper.Exitf(err.Error())
	}
}
