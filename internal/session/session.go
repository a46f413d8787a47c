// Package session binds one idle monitor to a frame loop and a timer queue
// for the lifetime of a monitoring session.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/davebream/timeridle/internal/frame"
	"github.com/davebream/timeridle/internal/idle"
	"github.com/davebream/timeridle/internal/logging"
	"github.com/davebream/timeridle/internal/timers"
)

type Options struct {
	BusyWindow    time.Duration
	FrameInterval time.Duration
	Logger        *slog.Logger
}

// Session owns the loop goroutine. Every monitor call is marshalled onto it.
type Session struct {
	ID      string
	Loop    *frame.Loop
	Queue   *timers.Queue
	monitor *idle.Monitor
	logger  *slog.Logger
	started time.Time
}

func New(opts Options) (*Session, error) {
	id := uuid.New().String()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logging.SessionLogger(logger, id)

	loop := frame.NewLoop(opts.FrameInterval)
	queue := timers.NewQueue()
	monitor, err := idle.New(idle.Options{
		Registry:   queue,
		Scheduler:  loop,
		BusyWindow: opts.BusyWindow,
		Logger:     logger,
	})
	if err != nil {
		loop.Close()
		return nil, fmt.Errorf("create monitor: %w", err)
	}
	// The host fires due timers at the start of each frame.
	loop.OnFrame(func(now time.Time) {
		if n := queue.Fire(now); n > 0 {
			logger.Debug("timers fired", "count", n, "pending", queue.Len())
		}
	})

	logger.Info("session started", "busy_window", monitor.BusyWindow(), "frame_interval", loop.Interval())
	return &Session{
		ID:      id,
		Loop:    loop,
		Queue:   queue,
		monitor: monitor,
		logger:  logger,
		started: time.Now(),
	}, nil
}

// Result is a single idleness evaluation.
type Result struct {
	Idle bool
	// Next is the earliest pending one-shot timer still ahead, if any.
	Next *idle.Timer
}

// Check evaluates the monitor once on the loop.
func (s *Session) Check(ctx context.Context) (Result, error) {
	var res Result
	err := s.Loop.Do(ctx, func() {
		res.Idle = s.monitor.IsIdleNow()
		now := time.Now()
		for _, t := range s.Queue.PendingTimers() {
			if !t.Repeating && t.Target.After(now) {
				res.Next = &t
				break
			}
		}
	})
	return res, err
}

// WaitIdle registers an observer and blocks until it fires or ctx ends. It
// returns how long the wait took.
func (s *Session) WaitIdle(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	fired := make(chan struct{})
	err := s.Loop.Do(ctx, func() {
		s.monitor.RegisterIdleTransitionCallback(idle.ObserverFunc(func() { close(fired) }))
	})
	if err != nil {
		return 0, err
	}

	select {
	case <-fired:
		elapsed := time.Since(start)
		s.logger.Info("became idle", "waited", elapsed)
		return elapsed, nil
	case <-ctx.Done():
		return time.Since(start), fmt.Errorf("wait for idle: %w", ctx.Err())
	}
}

func (s *Session) Pause(ctx context.Context) error {
	return s.Loop.Do(ctx, s.monitor.Pause)
}

// PauseAfter pauses the monitor once d has elapsed. The returned stop function
// cancels a pause that has not started yet.
func (s *Session) PauseAfter(ctx context.Context, d time.Duration) (stop func() bool) {
	t := time.AfterFunc(d, func() {
		if err := s.Pause(ctx); err != nil {
			s.logger.Debug("deferred pause failed", "after", d, "error", err)
		}
	})
	return t.Stop
}

func (s *Session) Resume(ctx context.Context) error {
	return s.Loop.Do(ctx, s.monitor.Resume)
}

func (s *Session) Close() {
	s.Loop.Close()
	s.logger.Info("session closed", "duration", time.Since(s.started))
}
