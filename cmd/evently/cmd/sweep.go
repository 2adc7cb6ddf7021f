package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"evently/internal/adapters/storage"
	"evently/internal/repository/postgres"
	"evently/internal/services"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep-uploads",
	Short: "Remove uploaded images no event references",
	Long: `Run one pass of the orphaned upload sweep and print the counts.

Files younger than UPLOAD_SWEEP_GRACE are never removed, so uploads belonging
to requests still in flight are safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep(cmd.Context())
	},
}

func runSweep(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	images, err := storage.NewDiskImageStore(cfg.UploadsDir, storage.DefaultURLPrefix, logger)
	if err != nil {
		return err
	}
	sweeper := services.NewUploadSweeper(images, postgres.NewEventRepository(db), cfg.SweepGrace, logger)
	res, err := sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	fmt.Printf("scanned %d, removed %d, failed %d\n", res.Scanned, res.Removed, res.Failed)
	return nil
}
