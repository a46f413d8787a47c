package idle

import (
	"log/slog"
	"time"
)

type Options struct {
	Registry   TimerRegistry
	Scheduler  FrameScheduler
	Clock      Clock         // defaults to SystemClock
	BusyWindow time.Duration // defaults to DefaultBusyWindow
	Logger     *slog.Logger  // nil discards
}

// Monitor reports whether pending timers leave the host idle and notifies a
// single registered observer when it becomes idle.
type Monitor struct {
	registry   TimerRegistry
	scheduler  FrameScheduler
	clock      Clock
	busyWindow time.Duration
	logger     *slog.Logger

	suspended bool
	observer  Observer
	// rechecks counts frame callbacks requested but not yet run.
	rechecks int
}

func New(opts Options) (*Monitor, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.BusyWindow <= 0 {
		opts.BusyWindow = DefaultBusyWindow
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Monitor{
		registry:   opts.Registry,
		scheduler:  opts.Scheduler,
		clock:      opts.Clock,
		busyWindow: opts.BusyWindow,
		logger:     opts.Logger,
	}, nil
}

func (m *Monitor) BusyWindow() time.Duration { return m.busyWindow }

func (m *Monitor) Suspended() bool { return m.suspended }

// IsIdleNow evaluates the policy at the current time. A busy result also
// requests a frame recheck unless one is already in flight.
func (m *Monitor) IsIdleNow() bool {
	idle := m.evaluate(m.clock.Now())
	if !idle && m.rechecks == 0 {
		m.scheduleRecheck()
	}
	return idle
}

// RegisterIdleTransitionCallback replaces any pending observer with o and
// requests a recheck on the next frame. o fires at most once.
func (m *Monitor) RegisterIdleTransitionCallback(o Observer) {
	if m.observer != nil {
		m.logger.Debug("replacing pending idle observer")
	}
	m.observer = o
	m.scheduleRecheck()
}

// Pause forces the monitor idle. If it was busy, the pending observer is
// notified immediately.
func (m *Monitor) Pause() {
	wasIdle := m.evaluate(m.clock.Now())
	m.suspended = true
	m.logger.Debug("timer idleness paused", "was_idle", wasIdle)
	if !wasIdle {
		m.notify()
	}
}

// Resume re-enables the policy. It does not notify; callers re-query.
func (m *Monitor) Resume() {
	m.suspended = false
	m.logger.Debug("timer idleness resumed")
}

// evaluate reports idle unless the monitor is running and the first one-shot
// timer still ahead of now is due within the busy window. Repeating and
// overdue timers are skipped.
func (m *Monitor) evaluate(now time.Time) bool {
	if m.suspended {
		return true
	}
	for _, t := range m.registry.PendingTimers() {
		if t.Repeating {
			continue
		}
		remaining := t.Target.Sub(now)
		if remaining <= 0 {
			continue
		}
		if remaining <= m.busyWindow {
			m.logger.Debug("busy on pending timer", "timer", t, "remaining", remaining)
			return false
		}
		return true
	}
	return true
}

func (m *Monitor) scheduleRecheck() {
	m.rechecks++
	m.scheduler.ScheduleOnce(m.recheck)
}

// recheck runs on a frame. Each busy frame schedules the next one, so a long
// busy period is a chain of callbacks rather than a deepening stack.
func (m *Monitor) recheck(frameTime time.Time) {
	if m.rechecks > 0 {
		m.rechecks--
	}
	if m.evaluate(m.clock.Now()) {
		m.notify()
		return
	}
	if m.rechecks == 0 {
		m.logger.Debug("still busy, rechecking next frame", "frame_time", frameTime)
		m.scheduleRecheck()
	}
}

func (m *Monitor) notify() {
	o := m.observer
	if o == nil {
		return
	}
	m.observer = nil
	m.logger.Info("timers idle, notifying observer")
	o.OnTransitionToIdle()
}
