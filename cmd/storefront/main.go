package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dwikikusuma/storefront/db"
	"github.com/dwikikusuma/storefront/internal/cli"
	"github.com/dwikikusuma/storefront/internal/gateway"
	"github.com/dwikikusuma/storefront/pkg/clock"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/localstate"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Text:    true,
		Output:  os.Stderr,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	cartState, err := localstate.OpenSQLite(cfg.CartStatePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer cartState.Close()

	sessionState, err := localstate.OpenSQLite(cfg.SessionStatePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer sessionState.Close()

	var database *sql.DB
	openDB := func() (*sql.DB, error) {
		if database != nil {
			return database, nil
		}
		d, err := postgres.Open(postgres.Config(cfg.Postgres))
		if err != nil {
			return nil, err
		}
		database = d
		return d, nil
	}
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	rt := &cli.Runtime{
		Log:          log,
		Clock:        clock.Real(),
		CartState:    cartState,
		SessionState: sessionState,
		OpenGateway: func() (*gateway.Gateway, error) {
			d, err := openDB()
			if err != nil {
				return nil, err
			}
			return gateway.NewPostgres(d, cfg.Postgres.Driver, clock.Real(), log), nil
		},
		Migrate: func(ctx context.Context) error {
			d, err := openDB()
			if err != nil {
				return err
			}
			_, err = d.ExecContext(ctx, db.Schema)
			return err
		},
		CheckoutConcurrency: cfg.CheckoutConcurrency,
	}

	if err := cli.NewRootCommand(rt).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
