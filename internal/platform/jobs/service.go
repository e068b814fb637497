package jobs

import (
	"context"
	"log/slog"
	"time"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/platform/config"
)

const JobOverdueSweep = "overdue_sweep"

// Service runs background maintenance: a bounded queue drained by one
// worker, fed by tickers. The only scheduled job today flips past-due
// assignments to overdue and notifies their appraisers.
type Service struct {
	Appraisals *appraisal.Service
	Notify     *notifications.Service
	Cfg        config.Config
	queue      chan job
}

type job struct {
	Type string
	Run  func(context.Context) error
}

func New(appraisals *appraisal.Service, notify *notifications.Service, cfg config.Config) *Service {
	return &Service{
		Appraisals: appraisals,
		Notify:     notify,
		Cfg:        cfg,
		queue:      make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.OverdueSweepInterval > 0 {
		go s.scheduleOverdueSweep(ctx, s.Cfg.OverdueSweepInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) error) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

// RunNow executes a job inline, bypassing the queue. Used by admin endpoints
// and tests.
func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) error) error {
	start := time.Now()
	err := run(ctx)
	if err != nil {
		slog.Warn("job failed", "jobType", jobType, "durationMs", time.Since(start).Milliseconds(), "err", err)
		return err
	}
	slog.Info("job completed", "jobType", jobType, "durationMs", time.Since(start).Milliseconds())
	return nil
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case next := <-s.queue:
			_ = s.RunNow(ctx, next.Type, next.Run)
		}
	}
}

func (s *Service) scheduleOverdueSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobOverdueSweep, s.SweepOverdue)
		}
	}
}

// SweepOverdue marks every past-due assignment overdue and notifies its
// appraiser.
func (s *Service) SweepOverdue(ctx context.Context) error {
	flipped, err := s.Appraisals.MarkOverdue(ctx)
	if err != nil {
		return err
	}
	for _, a := range flipped {
		if err := s.Notify.Create(ctx, a.AppraiserID, notifications.TypeAssignmentOverdue,
			"Appraisal overdue", "An appraisal assigned to you is past its due date."); err != nil {
			slog.Warn("overdue notification failed", "assignmentId", a.ID, "err", err)
		}
	}
	if len(flipped) > 0 {
		slog.Info("overdue sweep flipped assignments", "count", len(flipped))
	}
	return nil
}
