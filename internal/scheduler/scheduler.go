// Package scheduler runs the incremental batch sync on a cron schedule and
// serves manual Telegram commands.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dreamakashk/TradeSetup/internal/notifier"
	"github.com/dreamakashk/TradeSetup/internal/state"
	"github.com/dreamakashk/TradeSetup/internal/syncer"
)

// Scheduler manages the daily sync task.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *syncer.Runner
	Symbols  []string
	State    *state.Manager
	Notifier notifier.Notifier
	Ctx      context.Context

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, runner *syncer.Runner, symbols []string, sm *state.Manager, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Symbols:  symbols,
		State:    sm,
		Notifier: n,
		Ctx:      ctx,
	}
}

// Register registers the daily incremental sync task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, func() {
		s.RunBatch(syncer.ModeIncremental)
	}); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunBatch executes one batch run in the given mode. Overlapping runs are
// skipped: a second trigger while a batch is in flight is a no-op.
func (s *Scheduler) RunBatch(mode syncer.Mode) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] batch already running, skipping trigger")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	rep := s.Runner.Run(s.Ctx, s.Symbols, mode)
	if err := s.State.RecordRun(&rep); err != nil {
		log.Printf("[ERROR] record run state: %v", err)
	}
	if err := s.Notifier.Send(notifier.FormatRunReport(&rep)); err != nil {
		log.Printf("[ERROR] send run report: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/sync":
		go s.RunBatch(syncer.ModeIncremental)
		return "⏳ Incremental sync started"
	case "/recalculate":
		go s.RunBatch(syncer.ModeFullRecalculate)
		return "⏳ Full recalculation started"
	case "/status":
		st := s.State.Get()
		return notifier.FormatStatus(&st)
	default:
		return "Available commands:\n• /sync — run incremental sync now\n• /recalculate — recompute full history\n• /status — last run summary"
	}
}
