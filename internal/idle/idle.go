// Package idle decides whether a host's timer subsystem has settled, so a test
// harness can tell when the application under test is stable.
//
// A Monitor is not safe for concurrent use. All calls, including the frame
// callbacks it schedules, must happen on the goroutine that owns the host's
// main loop.
package idle

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination ../testutil/idlemock/idlemock.go -package idlemock github.com/davebream/timeridle/internal/idle TimerRegistry,FrameScheduler,Observer

import (
	"errors"
	"time"
)

// DefaultBusyWindow is how far ahead a one-shot timer may be due and still
// count as imminent work.
const DefaultBusyWindow = 1500 * time.Millisecond

var (
	ErrNoRegistry  = errors.New("idle: timer registry is required")
	ErrNoScheduler = errors.New("idle: frame scheduler is required")
)

// Timer is a read-only view of a timer owned by the host.
type Timer struct {
	ID        string
	Target    time.Time
	Interval  time.Duration
	Repeating bool
}

// TimerRegistry supplies the host's pending timers, ordered ascending by
// target time.
type TimerRegistry interface {
	PendingTimers() []Timer
}

// FrameScheduler runs cb exactly once at the next frame boundary.
type FrameScheduler interface {
	ScheduleOnce(cb func(frameTime time.Time))
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock with its monotonic component.
var SystemClock Clock = systemClock{}

// Observer is notified once when the monitor goes from busy to idle.
type Observer interface {
	OnTransitionToIdle()
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func()

func (f ObserverFunc) OnTransitionToIdle() { f() }
