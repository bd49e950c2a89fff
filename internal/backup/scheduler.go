// Package backup writes timestamped JSON snapshots of the project on a cron
// schedule and prunes old ones.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archdesign/internal/export"
	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

const timestampLayout = "20060102T150405.000Z"

// Source is what the scheduler snapshots. *store.Store satisfies it.
type Source interface {
	Get() domain.Project
	Key() string
}

type Scheduler struct {
	src    Source
	dir    string
	retain int
	log    *zap.Logger
	now    func() time.Time

	cron *cron.Cron
}

func NewScheduler(src Source, dir string, retain int, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		src:    src,
		dir:    dir,
		retain: retain,
		log:    log,
		now:    time.Now,
	}
}

// Start registers RunOnce under spec (six-field, seconds first, or a
// descriptor such as "@hourly") and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.log.Error("scheduled backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	s.cron = c
	c.Start()
	s.log.Info("backup scheduler started", zap.String("schedule", spec), zap.String("dir", s.dir))
	return nil
}

// Stop halts the cron loop and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}

// RunOnce writes one snapshot and prunes old ones. It returns the path
// written.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	data, err := export.JSON(s.src.Get())
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.json", s.src.Key(), s.now().UTC().Format(timestampLayout))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	s.log.Info("project backup written", zap.String("path", path))

	if err := s.prune(); err != nil {
		s.log.Warn("prune backups", zap.Error(err))
	}
	return path, nil
}

// List returns the snapshot files for the source key, oldest first.
func (s *Scheduler) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	key := s.src.Key()
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSnapshot(e.Name(), key) {
			continue
		}
		out = append(out, filepath.Join(s.dir, e.Name()))
	}
	// timestamps sort lexically
	sort.Strings(out)
	return out, nil
}

// isSnapshot reports whether name is "<key>-<timestamp>.json". Keys that
// merely share a prefix, such as "<key>-v2", do not match.
func isSnapshot(name, key string) bool {
	rest, ok := strings.CutPrefix(name, key+"-")
	if !ok {
		return false
	}
	stamp, ok := strings.CutSuffix(rest, ".json")
	if !ok {
		return false
	}
	_, err := time.Parse(timestampLayout, stamp)
	return err == nil
}

func (s *Scheduler) prune() error {
	if s.retain <= 0 {
		return nil
	}
	files, err := s.List()
	if err != nil {
		return err
	}
	for len(files) > s.retain {
		if err := os.Remove(files[0]); err != nil {
			return err
		}
		files = files[1:]
	}
	return nil
}
