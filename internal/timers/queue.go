// Package timers is an in-process timer queue that plays the host's role for
// the idle monitor: it owns the timers, fires them on frames, and exposes a
// read-only snapshot.
package timers

import (
	"container/heap"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davebream/timeridle/internal/idle"
)

type entry struct {
	timer idle.Timer
	fn    func()
	index int
}

type timerHeap []*entry

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].timer.Target.Before(h[j].timer.Target) }
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil // let the callback be GC'd
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue holds pending timers ordered by target time.
type Queue struct {
	mu   sync.Mutex
	heap timerHeap
	byID map[string]*entry
}

func NewQueue() *Queue {
	return &Queue{byID: make(map[string]*entry)}
}

// Schedule adds a timer due at target and returns its id. A repeating timer
// is re-armed interval after each frame that fires it.
func (q *Queue) Schedule(target time.Time, interval time.Duration, repeat bool, fn func()) string {
	e := &entry{
		timer: idle.Timer{
			ID:        uuid.New().String(),
			Target:    target,
			Interval:  interval,
			Repeating: repeat,
		},
		fn: fn,
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.heap, e)
	q.byID[e.timer.ID] = e
	return e.timer.ID
}

// Create schedules a timer delay from now, the way a host's setTimeout or
// setInterval would.
func (q *Queue) Create(now time.Time, delay time.Duration, repeat bool, fn func()) string {
	return q.Schedule(now.Add(delay), delay, repeat, fn)
}

// Delete cancels a pending timer. It reports whether the timer was found.
func (q *Queue) Delete(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, e.index)
	delete(q.byID, id)
	return true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

// PendingTimers returns a copy of the queue sorted by target time.
func (q *Queue) PendingTimers() []idle.Timer {
	q.mu.Lock()
	out := make([]idle.Timer, len(q.heap))
	for i, e := range q.heap {
		out[i] = e.timer
	}
	q.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Target.Before(out[j].Target) })
	return out
}

// Fire runs every timer due at or before now and returns how many fired.
// One-shot timers are removed first; callbacks run without the lock held.
func (q *Queue) Fire(now time.Time) int {
	var due []func()

	q.mu.Lock()
	for len(q.heap) > 0 && !q.heap[0].timer.Target.After(now) {
		e := heap.Pop(&q.heap).(*entry)
		if e.timer.Repeating && e.timer.Interval > 0 {
			e.timer.Target = now.Add(e.timer.Interval)
			heap.Push(&q.heap, e)
		} else {
			delete(q.byID, e.timer.ID)
		}
		due = append(due, e.fn)
	}
	q.mu.Unlock()

	for _, fn := range due {
		if fn != nil {
			fn()
		}
	}
	return len(due)
}
