// Package scheduler keeps time-driven view state fresh while the process runs.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"weatherdash.app/derive"
	"weatherdash.app/presenter"
)

// ThemeScheduler pushes the day/night theme to the view on a fixed interval,
// mirroring the periodic re-theme the page performs. It is the only writer to
// the theme region.
type ThemeScheduler struct {
	port     presenter.Port
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	stop    chan struct{}
	stopped chan struct{}
}

// NewThemeScheduler creates a scheduler. now may be nil for wall-clock time.
func NewThemeScheduler(port presenter.Port, interval time.Duration, now func() time.Time) *ThemeScheduler {
	if now == nil {
		now = time.Now
	}
	return &ThemeScheduler{
		port:     port,
		interval: interval,
		now:      now,
	}
}

// Start applies the theme immediately and then on every interval tick.
// Calling Start on a running scheduler is a no-op.
func (s *ThemeScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})

	s.Apply()
	slog.Info("theme scheduler started", "interval", s.interval)

	go s.run(s.stop, s.stopped)
}

func (s *ThemeScheduler) run(stop, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Apply()
		case <-stop:
			return
		}
	}
}

// Apply pushes the theme for the current hour.
func (s *ThemeScheduler) Apply() {
	theme := derive.ThemeForHour(s.now().Hour())
	s.port.SetValue(presenter.RegionTheme, theme)
}

// Stop halts the ticker loop and waits for it to exit.
func (s *ThemeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.stopped
	s.stop = nil
	s.stopped = nil

	slog.Info("theme scheduler stopped")
}
