package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wagnerlima/designdata-mcp/internal/projection"
	"github.com/wagnerlima/designdata-mcp/internal/storage"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

type exportFlags struct {
	dataDir   string // snapshot database directory
	wireframe string // wireframe whose graph is exported
	out       string // output file; empty means stdout
}

func init() {
	flags := new(exportFlags)

	exportCmd := &cobra.Command{
		Use:   "export [--wireframe id] [--out file]",
		Short: "Export the persisted data flows as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags.dataDir)
			if err != nil {
				return err
			}

			snapshots, err := storage.Open(cfg.Storage.DataDir)
			if err != nil {
				return fmt.Errorf("open snapshot store: %w", err)
			}
			defer snapshots.Close()

			snap, _, err := snapshots.Load(cfg.Storage.SnapshotName)
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}
			st := store.Rehydrate(snap)

			var g projection.Graph
			if flags.wireframe != "" {
				g = projection.SchemaGraph(st, flags.wireframe)
			}
			now := time.Now()
			data, err := projection.Export(g, st.DataLineage, now).Encode()
			if err != nil {
				return err
			}

			if flags.out == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(flags.out, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			bootstrapLogger.Info("export written",
				zap.String("file", flags.out),
				zap.String("suggested", projection.FileName(now)),
				zap.Int("dataLineage", len(st.DataLineage)),
			)
			return nil
		},
	}

	fs := exportCmd.Flags()
	fs.StringVarP(&flags.dataDir, "data-dir", "d", "./data", "Directory for the snapshot database")
	fs.StringVarP(&flags.wireframe, "wireframe", "w", "", "Include the schema graph of this wireframe")
	fs.StringVarP(&flags.out, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}
