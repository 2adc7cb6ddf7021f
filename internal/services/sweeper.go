package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"evently/internal/domain"
	"evently/internal/metrics"
)

// sweepTimeout bounds a single scheduled sweep.
const sweepTimeout = 5 * time.Minute

// SweepResult reports what a sweep pass did.
type SweepResult struct {
	Scanned int
	Removed int
	Failed  int
}

// UploadSweeper removes stored images that no event references. Files younger than the
// grace period are kept so an upload whose event row is still being written survives.
type UploadSweeper struct {
	images domain.ImageStore
	events domain.EventRepository
	grace  time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// NewUploadSweeper creates an UploadSweeper.
func NewUploadSweeper(images domain.ImageStore, events domain.EventRepository, grace time.Duration, logger *slog.Logger) *UploadSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadSweeper{
		images: images,
		events: events,
		grace:  grace,
		logger: logger,
		now:    time.Now,
	}
}

// Sweep runs one pass. Files are listed before references are loaded, so an image saved
// after the listing is never considered.
func (s *UploadSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	files, err := s.images.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list images: %w", err)
	}
	refs, err := s.events.ListImageRefs(ctx)
	if err != nil {
		return res, fmt.Errorf("list image references: %w", err)
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref] = struct{}{}
	}

	cutoff := s.now().Add(-s.grace)
	for _, f := range files {
		res.Scanned++
		if _, ok := referenced[f.Ref]; ok || f.ModTime.After(cutoff) {
			continue
		}
		if err := s.images.Delete(ctx, f.Ref); err != nil {
			res.Failed++
			s.logger.WarnContext(ctx, "sweep: failed to remove image", "image", f.Ref, "err", err)
			continue
		}
		res.Removed++
	}
	metrics.UploadSweepRemoved.Add(float64(res.Removed))
	return res, nil
}

// Start schedules Sweep with a cron spec such as "@every 1h" or "0 3 * * *".
func (s *UploadSweeper) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("upload sweeper already started")
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("upload sweeper scheduled", "schedule", spec, "grace", s.grace)
	return nil
}

// Stop cancels the schedule and waits for a running sweep to finish.
func (s *UploadSweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

func (s *UploadSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	res, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("upload sweep failed", "err", err)
		return
	}
	s.logger.Info("upload sweep finished", "scanned", res.Scanned, "removed", res.Removed, "failed", res.Failed)
}
