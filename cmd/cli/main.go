package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bidoro/waitlist-api/config"
	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/pkg/migrations"
	"github.com/bidoro/waitlist-api/pkg/utils"
	"github.com/spf13/cobra"
)

const migrationTimeout = 5 * time.Minute

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "waitlist-cli",
		Short:         "Operator commands for the waitlist API",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCommand(logger),
		newRollbackCommand(logger),
		newJoinCommand(),
		newAddCommand(logger),
		newSendTestEmailCommand(logger),
	)

	return root
}

func newMigrateCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations from MIGRATIONS_DIR and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQLDB(logger, func(sqlDB *sql.DB) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), migrationTimeout)
				defer cancel()

				if err := migrations.Up(ctx, sqlDB, migrationsConfig(logger)); err != nil {
					logger.Error("Database migration failed", "error", err.Error())
					return err
				}

				logger.Info("Database migrations completed")
				return nil
			})
		},
	}
}

func newRollbackCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback [steps]",
		Short: "Revert the last n migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = parsed
			}

			return withSQLDB(logger, func(sqlDB *sql.DB) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), migrationTimeout)
				defer cancel()

				if err := migrations.Down(ctx, sqlDB, migrationsConfig(logger), steps); err != nil {
					logger.Error("Database rollback failed", "error", err.Error(), "steps", steps)
					return err
				}

				logger.Info("Database rollback completed", "steps", steps)
				return nil
			})
		},
	}
}

func migrationsConfig(logger *log.Logger) migrations.Config {
	return migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}
}

func withSQLDB(logger *log.Logger, fn func(*sql.DB) error) error {
	db, err := config.NewDatabase(logger, nil)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err.Error())
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err.Error())
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB", "error", err.Error())
		}
	}()

	return fn(sqlDB)
}
