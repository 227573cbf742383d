package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/config"
	"github.com/nyxhub/content-sync/internal/db"
	"github.com/nyxhub/content-sync/internal/hub"
	"github.com/nyxhub/content-sync/internal/metrics"
	"github.com/nyxhub/content-sync/internal/queue"
	"github.com/nyxhub/content-sync/internal/repository"
	"github.com/nyxhub/content-sync/internal/service"
	"github.com/nyxhub/content-sync/internal/snapshot"
	contentsync "github.com/nyxhub/content-sync/internal/sync"
	"github.com/nyxhub/content-sync/internal/worker"
)

var rootCmd = &cobra.Command{
	Use:   "nyxsync",
	Short: "Keep the Nyx-Index-Hub synchronized with local content",
	Long: `nyxsync drains a durable queue of content-change jobs and pushes
consolidated per-content-type documents to the Nyx-Index-Hub.

Connection settings (hub URL, group key, content-type mappings) come from
the settings file; NYX_HUB_URL, NYX_GROUP_KEY, NYX_API_USERNAME, and
NYX_API_PASSWORD override it.`,
	SilenceUsage: true,
}

// app bundles the wired dependency graph shared by all commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	pool    *pgxpool.Pool
	queue   queue.JobQueue
	svc     *service.SyncService
	batch   *worker.BatchWorker
	metrics *metrics.Metrics
	reg     *prometheus.Registry
}

func (a *app) close() {
	a.pool.Close()
	_ = a.logger.Sync()
}

// newApp loads configuration, connects to the database, runs migrations,
// and wires the full pipeline.
func newApp(ctx context.Context) (*app, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	env := config.EnvFromOS()
	settings, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		pool.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	q := queue.NewPgJobQueue(pool, cfg.LeaseDuration)
	content := repository.NewPgContentRepository(pool)
	hubClient := hub.NewHTTPClient(
		config.ResolveHubURL(env, settings),
		config.ResolveCredentials(env),
		cfg.HubRateLimit,
		logger,
	)

	orch := contentsync.NewOrchestrator(
		hubClient,
		content,
		snapshot.NewBuilder(),
		snapshot.NewFileStore(cfg.StorageRoot),
		func() (*config.Settings, error) { return config.LoadSettings(cfg.SettingsFile) },
		config.EnvFromOS,
		logger,
	)

	batch := worker.NewBatchWorker(q, content, orch, cfg.FailurePolicy, logger, m.WorkerHooks())
	svc := service.NewSyncService(q, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		pool:    pool,
		queue:   q,
		svc:     svc,
		batch:   batch,
		metrics: m,
		reg:     reg,
	}, nil
}

func main() {
	rootCmd.AddCommand(processCmd, statusCmd, clearCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
