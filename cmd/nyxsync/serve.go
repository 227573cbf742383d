package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/api"
	"github.com/nyxhub/content-sync/internal/config"
	"github.com/nyxhub/content-sync/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the change-event intake server and periodic queue drain",
	Long: `Start the HTTP server that accepts content-change events and, when
async mode is enabled in the settings file, drain the sync queue on an
interval in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		logger := a.logger

		settings, err := config.LoadSettings(a.cfg.SettingsFile)
		if err != nil {
			return err
		}

		workerCtx, cancelWorker := context.WithCancel(ctx)
		defer cancelWorker()

		workerDone := make(chan struct{})
		if settings.AsyncMode {
			iw := worker.NewIntervalWorker(a.batch, a.cfg.DrainInterval, a.cfg.BatchLimit, logger)
			go func() {
				defer close(workerDone)
				iw.Run(workerCtx)
			}()
		} else {
			close(workerDone)
			logger.Info("async mode disabled, queue drain worker not started")
		}

		router := api.NewRouter(a.svc, settings.AsyncMode, a.reg, logger)
		srv := &http.Server{
			Addr:         ":" + a.cfg.HTTPPort,
			Handler:      router,
			ReadTimeout:  a.cfg.ReadTimeout,
			WriteTimeout: a.cfg.WriteTimeout,
		}

		go func() {
			logger.Info("server starting", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server error", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", zap.Error(err))
		}

		// Let the in-flight batch finish its current job before exiting.
		cancelWorker()
		<-workerDone

		logger.Info("server stopped cleanly")
		return nil
	},
}
