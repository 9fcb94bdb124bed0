// Command cleanup runs a one-shot sweep of expired invitation keys and
// exits. Intended for cron-style scheduling against a deployment that does
// not run the in-process housekeeping worker. Always exits 0 so a transient
// failure never breaks the schedule; errors are logged.
package main

import (
	"context"
	"fmt"

	"github.com/wattlehq/gatepass/internal/invitation/app"
	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/internal/invitation/store/drivers/sqlite"
	"github.com/wattlehq/gatepass/pkg/slogx"
)

func main() {
	cfg := app.LoadConfig()

	logger := slogx.New(slogx.Config{
		Service: "invitation-cleanup",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		return
	}

	registry := &service.RegistryService{Store: db}

	ctx := slogx.WithContext(context.Background(), logger)
	deleted, err := registry.SweepExpired(ctx)
	if err != nil {
		logger.Error("sweep failed", "error", err)
		return
	}

	logger.Info("sweep finished", "deleted", deleted)
}
