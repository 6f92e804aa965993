package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wagnerlima/designdata-mcp/internal/storage"
)

func init() {
	var dataDir string

	resetCmd := &cobra.Command{
		Use:   "reset [--data-dir dir]",
		Short: "Drop the persisted snapshot (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, dataDir)
			if err != nil {
				return err
			}

			snapshots, err := storage.Open(cfg.Storage.DataDir)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer snapshots.Close()

			if err := snapshots.Delete(cfg.Storage.SnapshotName); err != nil {
				return err
			}
			bootstrapLogger.Info("snapshot dropped",
				zap.String("dataDir", snapshots.DataDir()),
				zap.String("name", cfg.Storage.SnapshotName),
			)
			return nil
		},
	}

	resetCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "./data", "Directory for the snapshot database")
	rootCmd.AddCommand(resetCmd)
}
