package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/subtlepseudonym/almanac"
	"github.com/subtlepseudonym/almanac/leap"
)

const shutdownTimeout = 5 * time.Second

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the configured jobs and serve reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx)
		},
	}

	cmd.Flags().String("listen", "", "http listen address")
	return cmd
}

func (a *app) watch(ctx context.Context) error {
	parser := almanac.ScheduleParser{
		Location: a.config.Location,
		Table:    leap.Default,
		Logger:   a.logger.Named("schedule"),
	}

	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(zap.NewStdLog(a.logger.Named("cron")))))
	for i, j := range a.config.Jobs {
		schedule, err := parser.Parse(j.Schedule)
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
		scales, err := j.ParseScales()
		if err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}

		label := j.Label
		if label == "" {
			label = j.Schedule
		}

		job := almanac.Job{
			Label:     label,
			Scales:    scales,
			Precision: j.Precision,
			DUT1:      a.config.DUT1,
			Converter: a.converter,
			Logger:    a.logger.Named("job"),
		}
		id := c.Schedule(schedule, job)
		a.logger.Info("scheduled job",
			zap.String("label", label),
			zap.Int("id", int(id)),
			zap.Time("next", schedule.Next(time.Now())),
		)
	}

	handler := almanac.Handler{
		Job: almanac.Job{
			DUT1:      a.config.DUT1,
			Precision: 3,
			Converter: a.converter,
			Logger:    a.logger.Named("http"),
		},
		Table: leap.Default,
	}
	srv := &http.Server{
		Addr:              a.config.Listen,
		Handler:           handler.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", srv.Addr))
		errs <- srv.ListenAndServe()
	}()

	c.Start()
	defer func() {
		<-c.Stop().Done()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
