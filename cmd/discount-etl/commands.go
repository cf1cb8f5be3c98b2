package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"discount_etl/internal/domain"
	"discount_etl/internal/httpapi"
	"discount_etl/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "discount-etl",
		Short:         "Harvest grocery discounts from the catalog source into postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newRunCmd(&configPath),
		newCleanupCmd(&configPath),
		newStatusCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler and the HTTP control surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *configPath, true)
			if err != nil {
				return err
			}
			defer a.Close(context.WithoutCancel(ctx))

			sched, err := scheduler.NewScheduler(a.coordinator, scheduler.Config{
				RunTimes:          a.cfg.Schedule.RunTimes,
				StartupDelay:      a.cfg.Schedule.StartupDelay,
				DisableStartupRun: a.cfg.Schedule.DisableStartupRun,
				Location:          a.location,
			}, a.logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              a.cfg.HTTP.Addr,
				Handler:           otelhttp.NewHandler(httpapi.New(a.coordinator, a.metrics.Handler(), a.logger).Routes(), "discount-etl"),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				a.logger.Info("http server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			schedCtx, cancelSched := context.WithCancel(ctx)
			defer cancelSched()
			go func() {
				if err, ok := <-serverErr; ok {
					a.logger.Error("http server failed", "error", err)
					cancelSched()
				}
			}()

			a.logger.Info("starting discount etl",
				"scopes", len(a.cfg.Scopes()),
				"fetch_by_shop", a.cfg.Catalog.FetchByShop,
				"concurrency", a.cfg.ETL.Concurrency,
			)

			if err := sched.Start(schedCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("scheduler error", "error", err)
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("http server shutdown", "error", err)
			}

			a.coordinator.Wait()
			a.logger.Info("discount etl stopped")
			return nil
		},
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	var rawScopes []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one ETL pass now, optionally restricted to scopes",
		Example: "  discount-etl run\n" +
			"  discount-etl run --scope category:pecivo --scope shop:lidl",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scopes := make([]domain.Scope, 0, len(rawScopes))
			for _, raw := range rawScopes {
				scope, err := domain.ParseScope(raw)
				if err != nil {
					return err
				}
				scopes = append(scopes, scope)
			}

			a, err := newApp(cmd.Context(), *configPath, true)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			report, err := a.coordinator.Run(cmd.Context(), domain.TriggerManual, scopes)
			if err != nil {
				return err
			}
			if err := printJSON(report); err != nil {
				return err
			}
			if report.Status == domain.StatusError {
				return fmt.Errorf("run %s finished with errors", report.RunID)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&rawScopes, "scope", nil, "scope to fetch as kind:id, repeatable")
	return cmd
}

func newCleanupCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired discounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			deleted, err := a.coordinator.Cleanup(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"deleted": deleted})
		},
	}
}

func newStatusCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show active discount counts and recent runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			snapshot, err := a.coordinator.Status(cmd.Context())
			if err != nil {
				return err
			}
			recent, err := a.coordinator.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list recent runs: %w", err)
			}

			return printJSON(struct {
				*domain.StatusSnapshot
				RecentRuns []domain.RunLog `json:"recent_runs"`
			}{snapshot, recent})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of recent runs to show")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
