package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wagnerlima/designdata-mcp/internal/config"
	"github.com/wagnerlima/designdata-mcp/internal/figma"
	"github.com/wagnerlima/designdata-mcp/internal/issues"
	"github.com/wagnerlima/designdata-mcp/internal/logging"
	"github.com/wagnerlima/designdata-mcp/internal/server"
	"github.com/wagnerlima/designdata-mcp/internal/storage"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

type serveFlags struct {
	transport string // stdio or http
	port      string // HTTP port, http transport only
	dataDir   string // snapshot database directory
}

func init() {
	flags := new(serveFlags)

	serveCmd := &cobra.Command{
		Use:   "serve [--transport stdio|http] [--port port] [--data-dir dir]",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags.dataDir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Server.Transport = flags.transport
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = flags.port
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}

	fs := serveCmd.Flags()
	fs.StringVar(&flags.transport, "transport", "stdio", "Transport mode: stdio or http")
	fs.StringVarP(&flags.port, "port", "p", "8081", "HTTP port (only used with --transport http)")
	fs.StringVarP(&flags.dataDir, "data-dir", "d", "./data", "Directory for the snapshot database")

	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	snapshots, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer snapshots.Close()

	snap, err := loadSnapshot(snapshots, cfg.Storage.SnapshotName, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	st := store.New(
		store.WithSnapshot(snap),
		store.WithPersister(snapshots.Persister(cfg.Storage.SnapshotName)),
		store.WithLogger(logger.Named("store")),
		store.WithRegisterer(reg),
	)

	fc := figma.New(
		figma.WithBaseURL(cfg.Figma.BaseURL),
		figma.WithHTTPClient(&http.Client{Timeout: cfg.Figma.Timeout}),
		figma.WithLogger(logger.Named("figma")),
	)

	var tracker issues.Tracker = issues.Disabled{}
	if cfg.Issues.Enabled {
		if err := cfg.Issues.Tracker().Validate(); err != nil {
			logger.Warn("issue tracker config invalid", zap.Error(err))
		}
		logger.Info("issue tracker enabled but no client is available; issues cannot be created")
	}

	srv, closeSession := server.New(server.Deps{
		Store:              st,
		Figma:              fc,
		Logger:             logger,
		Tracker:            tracker,
		TrackerConfig:      cfg.Issues.Tracker(),
		RefreshConcurrency: cfg.Figma.RefreshConcurrency,
	})
	defer closeSession()

	switch cfg.Server.Transport {
	case "stdio":
		logger.Info("designdata MCP server starting (stdio)")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case "http":
		return serveHTTP(ctx, cfg, srv, reg, logger)
	default:
		return fmt.Errorf("unknown transport: %s (use stdio or http)", cfg.Server.Transport)
	}
}

// loadSnapshot reads the named snapshot for startup. A payload that cannot be
// decoded is moved aside and the server starts from the initial state.
func loadSnapshot(snapshots *storage.SnapshotStore, name string, logger *zap.Logger) (store.Snapshot, error) {
	snap, found, err := snapshots.Load(name)
	if errors.Is(err, storage.ErrCorrupt) {
		logger.Error("snapshot unreadable, starting from the initial state",
			zap.String("name", name),
			zap.String("quarantine", name+storage.CorruptSuffix),
			zap.Error(err),
		)
		if qerr := snapshots.Quarantine(name); qerr != nil {
			logger.Error("quarantine snapshot failed", zap.String("name", name), zap.Error(qerr))
		}
		return store.Snapshot{}, nil
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	logger.Info("snapshot loaded",
		zap.String("dataDir", snapshots.DataDir()),
		zap.String("name", name),
		zap.Bool("found", found),
		zap.Int("wireframes", len(snap.Wireframes)),
	)
	return snap, nil
}

func serveHTTP(ctx context.Context, cfg *config.Config, srv *mcp.Server, reg *prometheus.Registry, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return srv
	}, nil))

	hs := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("designdata MCP server listening",
			zap.String("addr", hs.Addr),
			zap.String("metrics", cfg.Server.MetricsPath),
		)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
