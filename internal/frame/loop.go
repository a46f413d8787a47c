// Package frame provides a main loop that ticks at a fixed frame interval and
// runs callbacks on a single goroutine.
package frame

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// DefaultInterval is roughly one frame at 60Hz.
const DefaultInterval = 16 * time.Millisecond

var ErrClosed = errors.New("frame: loop closed")

// Loop owns one goroutine. Posted functions, per-frame hooks and frame
// callbacks all run on it, in that order of priority within a frame.
type Loop struct {
	mu       sync.Mutex
	posted   []func()
	frameCBs []func(time.Time)
	hooks    []func(time.Time)
	notify   chan struct{}
	closed   chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	interval time.Duration
	frames   uint64
}

func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	l := &Loop{
		notify:   make(chan struct{}, 1),
		closed:   make(chan struct{}),
		interval: interval,
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run()
	}()
	return l
}

func (l *Loop) Interval() time.Duration { return l.interval }

// Post runs fn on the loop goroutine as soon as possible.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.closed:
		return // loop shut down, discard
	default:
	}
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Do posts fn and waits for it to finish. It must not be called from the
// loop goroutine.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-l.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ScheduleOnce runs cb once on the next frame with the frame's timestamp.
// Callbacks scheduled while a frame is running wait for the following frame.
func (l *Loop) ScheduleOnce(cb func(frameTime time.Time)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frameCBs = append(l.frameCBs, cb)
}

// OnFrame registers fn to run at the start of every frame, before the frame
// callbacks.
func (l *Loop) OnFrame(fn func(frameTime time.Time)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, fn)
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *Loop) run() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.closed:
			return
		case <-l.notify:
			l.drainPosted()
		case now := <-ticker.C:
			l.drainPosted()
			l.runFrame(now)
		}
	}
}

func (l *Loop) drainPosted() {
	for {
		select {
		case <-l.closed:
			return
		default:
		}

		l.mu.Lock()
		if len(l.posted) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.posted[0]
		l.posted[0] = nil // zero slot so fn closure can be GC'd
		l.posted = l.posted[1:]
		l.mu.Unlock()

		fn()
	}
}

func (l *Loop) runFrame(now time.Time) {
	l.mu.Lock()
	hooks := slices.Clone(l.hooks)
	cbs := l.frameCBs
	l.frameCBs = nil
	l.frames++
	l.mu.Unlock()

	for _, fn := range hooks {
		fn(now)
	}
	for _, cb := range cbs {
		cb(now)
	}
}

// Close stops the loop and blocks until its goroutine exits. Pending
// callbacks are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.closed) })
	l.wg.Wait()
}
