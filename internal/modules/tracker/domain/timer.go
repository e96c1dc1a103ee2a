package domain

import "time"

type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerPaused  TimerState = "paused"
)

// Timer is the tracking state machine: Idle -> Running -> Paused -> Running
// -> Idle. Transitions that do not apply in the current state are no-ops,
// and the accessors never return negative values however the wall clock
// moves between calls.
type Timer struct {
	State          TimerState
	StartedAt      time.Time
	PauseStartedAt time.Time
	PausedSeconds  int64
}

func NewTimer() Timer {
	return Timer{State: TimerIdle}
}

// Start begins a fresh run. It reports false without touching any counter
// when tracking is already active (running or paused).
func (t *Timer) Start(now time.Time) bool {
	if t.State != TimerIdle {
		return false
	}
	*t = Timer{State: TimerRunning, StartedAt: now}
	return true
}

// Pause suspends a running timer. Pausing while already paused or idle
// changes nothing.
func (t *Timer) Pause(now time.Time) bool {
	if t.State != TimerRunning {
		return false
	}
	t.State = TimerPaused
	t.PauseStartedAt = now
	return true
}

// Resume folds the current pause span into the paused total and continues
// running. A no-op unless paused.
func (t *Timer) Resume(now time.Time) bool {
	if t.State != TimerPaused {
		return false
	}
	t.PausedSeconds += clampSeconds(now.Sub(t.PauseStartedAt))
	t.PauseStartedAt = time.Time{}
	t.State = TimerRunning
	return true
}

// Stop ends tracking and returns the final elapsed seconds, resetting the
// timer to idle. Stopping an idle timer returns exactly 0.
func (t *Timer) Stop(now time.Time) int64 {
	if t.State == TimerIdle {
		return 0
	}
	if t.State == TimerPaused {
		t.Resume(now)
	}
	elapsed := t.ElapsedSeconds(now)
	*t = NewTimer()
	return elapsed
}

// ElapsedSeconds is tracked time excluding pauses, clamped at zero.
func (t Timer) ElapsedSeconds(now time.Time) int64 {
	if t.State == TimerIdle {
		return 0
	}
	elapsed := clampSeconds(now.Sub(t.StartedAt)) - t.TotalPausedSeconds(now)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// TotalPausedSeconds includes the in-progress pause span while paused.
func (t Timer) TotalPausedSeconds(now time.Time) int64 {
	total := t.PausedSeconds
	if t.State == TimerPaused {
		total += clampSeconds(now.Sub(t.PauseStartedAt))
	}
	if total < 0 {
		return 0
	}
	return total
}

func clampSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
