package timers

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davebream/timeridle/internal/idle"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestQueueSnapshotOrder(t *testing.T) {
	q := NewQueue()
	q.Schedule(base.Add(300*time.Millisecond), 0, false, nil)
	q.Schedule(base.Add(100*time.Millisecond), 100*time.Millisecond, true, nil)
	q.Schedule(base.Add(-50*time.Millisecond), 0, false, nil)
	q.Schedule(base.Add(200*time.Millisecond), 0, false, nil)

	want := []idle.Timer{
		{Target: base.Add(-50 * time.Millisecond)},
		{Target: base.Add(100 * time.Millisecond), Interval: 100 * time.Millisecond, Repeating: true},
		{Target: base.Add(200 * time.Millisecond)},
		{Target: base.Add(300 * time.Millisecond)},
	}
	got := q.PendingTimers()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(idle.Timer{}, "ID")); diff != "" {
		t.Errorf("PendingTimers() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueueIDs(t *testing.T) {
	q := NewQueue()
	a := q.Create(base, time.Second, false, nil)
	b := q.Create(base, time.Second, false, nil)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestQueueDelete(t *testing.T) {
	q := NewQueue()
	keep := q.Create(base, time.Second, false, nil)
	drop := q.Create(base, 500*time.Millisecond, false, nil)

	assert.True(t, q.Delete(drop))
	assert.False(t, q.Delete(drop), "second delete finds nothing")
	assert.False(t, q.Delete("missing"))

	timers := q.PendingTimers()
	require.Len(t, timers, 1)
	assert.Equal(t, keep, timers[0].ID)
}

func TestQueueFire(t *testing.T) {
	t.Run("fires due one-shots and removes them", func(t *testing.T) {
		q := NewQueue()
		var fired []string
		q.Create(base, 10*time.Millisecond, false, func() { fired = append(fired, "a") })
		q.Create(base, 20*time.Millisecond, false, func() { fired = append(fired, "b") })
		q.Create(base, time.Second, false, func() { fired = append(fired, "c") })

		n := q.Fire(base.Add(20 * time.Millisecond))
		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"a", "b"}, fired)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("re-arms repeating timers from the frame time", func(t *testing.T) {
		q := NewQueue()
		count := 0
		id := q.Create(base, 100*time.Millisecond, true, func() { count++ })

		frame := base.Add(130 * time.Millisecond)
		assert.Equal(t, 1, q.Fire(frame))
		assert.Equal(t, 1, count)

		timers := q.PendingTimers()
		require.Len(t, timers, 1)
		assert.Equal(t, id, timers[0].ID)
		assert.Equal(t, frame.Add(100*time.Millisecond), timers[0].Target)
		assert.True(t, q.Delete(id))
	})

	t.Run("nothing due", func(t *testing.T) {
		q := NewQueue()
		q.Create(base, time.Second, false, nil)
		assert.Equal(t, 0, q.Fire(base))
		assert.Equal(t, 1, q.Len())
	})

	t.Run("callback may schedule another timer", func(t *testing.T) {
		q := NewQueue()
		q.Create(base, 0, false, func() {
			q.Create(base, 50*time.Millisecond, false, nil)
		})
		assert.Equal(t, 1, q.Fire(base))
		assert.Equal(t, 1, q.Len())
	})
}

func TestQueueDrivesMonitor(t *testing.T) {
	q := NewQueue()
	q.Create(base, 200*time.Millisecond, false, nil)

	var frames []func(time.Time)
	sched := schedulerFunc(func(cb func(time.Time)) { frames = append(frames, cb) })
	now := base
	m, err := idle.New(idle.Options{Registry: q, Scheduler: sched, Clock: clockFunc(func() time.Time { return now })})
	require.NoError(t, err)

	idleCalls := 0
	m.RegisterIdleTransitionCallback(idle.ObserverFunc(func() { idleCalls++ }))

	for i := 0; i < 20 && idleCalls == 0; i++ {
		now = now.Add(16 * time.Millisecond)
		q.Fire(now)
		pending := frames
		frames = nil
		for _, cb := range pending {
			cb(now)
		}
	}
	assert.Equal(t, 1, idleCalls)
	assert.Equal(t, 0, q.Len())
}

type schedulerFunc func(cb func(time.Time))

func (f schedulerFunc) ScheduleOnce(cb func(time.Time)) { f(cb) }

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }
