package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"reelsmith/internal/assethistory"
	"reelsmith/internal/config"
	"reelsmith/internal/httpapi"
	"reelsmith/internal/jobs"
	"reelsmith/internal/metrics"
	"reelsmith/internal/pipeline"
	"reelsmith/internal/render"
	"reelsmith/pkg/log"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the job queue and HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0755); err != nil {
		return err
	}

	wiring, err := buildWiring(cfg)
	if err != nil {
		return err
	}
	defer wiring.Close()

	m := metrics.New()
	pipe := pipeline.New(wiring.Deps)

	queue := jobs.NewQueue(func(ctx context.Context, job *jobs.RenderJob) error {
		start := time.Now()
		err := pipe.Execute(ctx, job)
		m.ObserveJobDuration(time.Since(start))
		if err != nil {
			m.IncJobsFailed()
			return err
		}
		m.IncJobsCompleted()
		m.AddScenesRendered(len(job.Scenes))
		return nil
	}, wiring.Renderer.ArtifactExists)

	server := httpapi.NewServer(queue,
		httpapi.WithHealthCheck("synthesis", wiring.Synthesizer),
		httpapi.WithHealthCheck("transcription", wiring.Transcriber),
		httpapi.WithMetrics(m),
	)

	janitorCron := cron.New()
	janitor := pipeline.NewJanitor(cfg.Paths.WorkDir, time.Duration(cfg.Cleanup.MaxAgeHours)*time.Hour)
	if err := janitor.Schedule(janitorCron, cfg.Cleanup.CronExpr); err != nil {
		return err
	}
	janitorCron.Start()
	defer janitorCron.Stop()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("Listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(":" + cfg.Server.Port); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Let the in-flight job finish; queued jobs drain too.
		queue.Wait()
		return nil
	})
	return group.Wait()
}

// wiring holds the built collaborators of one pipeline, plus the handles the
// command layer needs beyond pipeline.Deps.
type wiring struct {
	Deps        pipeline.Deps
	Synthesizer httpapi.HealthChecker
	Transcriber httpapi.HealthChecker
	Renderer    *render.Client
	history     *assethistory.Store
}

func (w *wiring) Close() {
	if w.history != nil {
		if err := w.history.Close(); err != nil {
			log.Warn("Failed to close asset history: %v", err)
		}
	}
}
