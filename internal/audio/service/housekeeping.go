package service

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HousekeepingService periodically evicts cold transcode renditions and
// abandoned temp files so the cache directory doesn't grow without bound.
type HousekeepingService struct {
	CacheDir string
	MaxAge   time.Duration
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service for the transcode
// cache at cacheDir. Renditions untouched for maxAge are removed. If
// interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(cacheDir string, maxAge time.Duration, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	return &HousekeepingService{
		CacheDir: cacheDir,
		MaxAge:   maxAge,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Non-blocking; call Stop() to shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup to clear leftovers from a crash.
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep removes cold renditions and stale temp files. Failures on
// individual files are logged and skipped.
func (s *HousekeepingService) sweep() {
	now := time.Now()
	var removed, kept int

	err := filepath.WalkDir(s.CacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		age := now.Sub(info.ModTime())
		stale := age > s.MaxAge ||
			(strings.Contains(d.Name(), ".tmp-") && age > time.Hour)
		if !stale {
			kept++
			return nil
		}

		if err := os.Remove(path); err != nil {
			s.Logger.Warn("failed to remove stale rendition",
				slog.String("path", path),
				slog.Any("error", err),
			)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		s.Logger.Warn("cache sweep failed", slog.Any("error", err))
		return
	}

	if removed > 0 {
		s.Logger.Info("cache sweep complete",
			slog.Int("removed", removed),
			slog.Int("kept", kept),
		)
	}
}
