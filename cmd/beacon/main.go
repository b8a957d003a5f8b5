package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beaconcs/beacon/internal/catalog"
	"github.com/beaconcs/beacon/internal/cli"
	"github.com/beaconcs/beacon/internal/db"
	"github.com/beaconcs/beacon/internal/repository"
	"github.com/beaconcs/beacon/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// BEACON_DB overrides the default ~/.beacon/beacon.db
	dbPath := os.Getenv("BEACON_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".beacon", "beacon.db")
	}

	// Catalog resolution: env var, then a catalog.yaml next to the working
	// directory (convenient during development), then ~/.beacon.
	catalogPath := os.Getenv("BEACON_CATALOG")
	if catalogPath == "" {
		if stat, err := os.Stat("./catalog.yaml"); err == nil && !stat.IsDir() {
			catalogPath = "./catalog.yaml"
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			catalogPath = filepath.Join(home, ".beacon", "catalog.yaml")
		}
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog %s: %w", catalogPath, err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	clientRepo := repository.NewSQLiteClientRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	convRepo := repository.NewSQLiteConversationRepo(database)
	alertRepo := repository.NewSQLiteAlertRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case logging to stderr
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("BEACON_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Clients: service.NewClientService(clientRepo),
		Plans:   service.NewPlanService(cat, planRepo, clientRepo, uow, observer),
		Triage:  service.NewTriageService(convRepo, clientRepo),
		Alerts:  service.NewAlertService(alertRepo, clientRepo),
		Catalog: cat,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
