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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api/handlers"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api/scheduler"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the expiry sweeper",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := config.New()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := handlers.App{Config: *conf}
	if err := a.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}

	var sweeper *scheduler.Scheduler
	if conf.ExpirySweepSchedule != "" {
		sweeper = scheduler.NewScheduler(a.Court, models.NewAddress(conf.KeeperAddress), conf.ExpirySweepSchedule)
		if err := sweeper.Start(); err != nil {
			_ = a.Close()
			return err
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", conf.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("lawconsensus is up and running",
			"port", conf.Port,
			"url", conf.BaseURL,
			"store", conf.Store,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		zap.S().Info("shutting down")
	case err := <-errCh:
		if err != nil {
			zap.S().Errorw("http server failed", "error", err)
		}
	}

	if sweeper != nil {
		sweeper.Stop()
	}
	a.Hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnw("http server shutdown", "error", err)
	}
	if err := a.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	zap.S().Info("stopped")
	return nil
}
