package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"evently/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back database migrations",
	Long: `Apply all pending migrations (up, the default) or roll back the most recent one (down).

Examples:
  evently migrate
  evently migrate down`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}
		return runMigrate(cmd.Context(), direction)
	},
}

func runMigrate(ctx context.Context, direction string) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("unknown direction %q, want up or down", direction)
	}
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if direction == "down" {
		err = postgres.MigrateDown(db)
	} else {
		err = postgres.Migrate(db)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	logger.Info("migrations applied", "direction", direction)
	return nil
}
