package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"reelsmith/pkg/log"
)

// Janitor removes job workspaces that outlived their job, e.g. after a crash
// mid-pipeline. Normal completion cleans its own workspace.
type Janitor struct {
	workDir string
	maxAge  time.Duration
	now     func() time.Time
}

func NewJanitor(workDir string, maxAge time.Duration) *Janitor {
	return &Janitor{
		workDir: workDir,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Schedule registers the sweep on the given cron at the given spec.
func (j *Janitor) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		if n := j.Sweep(); n > 0 {
			log.Info("Janitor removed %d stale workspaces", n)
		}
	})
	return err
}

// Sweep removes workspace directories older than maxAge and returns how many
// were removed.
func (j *Janitor) Sweep() int {
	entries, err := os.ReadDir(j.workDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Janitor cannot read %s: %v", j.workDir, err)
		}
		return 0
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.workDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Warn("Janitor failed to remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}
