package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reelsmith/internal/config"
	"reelsmith/internal/jobs"
	"reelsmith/internal/pipeline"
	"reelsmith/pkg/log"
)

// scriptFile is the on-disk shape of a one-shot render script.
type scriptFile struct {
	Scenes []jobs.Scene      `json:"scenes"`
	Config jobs.RenderConfig `json:"config"`
}

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <script.json>",
		Short: "Render one script file and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0])
		},
	}
	cmd.Flags().Duration("timeout", 30*time.Minute, "Overall render deadline")
	return cmd
}

func runRender(cmd *cobra.Command, scriptPath string) error {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}
	var script scriptFile
	if err := json.Unmarshal(data, &script); err != nil {
		return fmt.Errorf("parse script %s: %w", scriptPath, err)
	}
	if len(script.Scenes) == 0 {
		return fmt.Errorf("script %s has no scenes", scriptPath)
	}
	if script.Config.Orientation == "" {
		script.Config.Orientation = "portrait"
	}
	if script.Config.MediaSource == "" {
		script.Config.MediaSource = jobs.MediaSourceStock
	}

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

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	job := &jobs.RenderJob{
		ID:        uuid.NewString(),
		Scenes:    script.Scenes,
		Config:    script.Config,
		CreatedAt: time.Now(),
	}
	log.Info("Rendering %s as job %s (%d scenes)", scriptPath, job.ID, len(job.Scenes))

	if err := pipeline.New(wiring.Deps).Execute(ctx, job); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), wiring.Renderer.OutputPath(job.ID))
	return nil
}
