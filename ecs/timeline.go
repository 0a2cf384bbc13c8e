package ecs

import "sort"

// deferredAction is logic scheduled to run at a simulated fire time. The
// liveness predicate is re-checked at fire time so actions whose owner died
// in the meantime become no-ops instead of needing eager cancellation.
type deferredAction struct {
	fireAt float64
	alive  func() bool
	run    func()
}

// Timeline is the single-threaded simulated clock plus the deferred-action
// queue polled once per tick. There are no real timers and no blocking
// waits; "suspension" in attack patterns is entirely entries on this queue.
type Timeline struct {
	now     float64
	pending []deferredAction
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns accumulated simulated time in seconds.
func (t *Timeline) Now() float64 {
	return t.now
}

// Advance moves the simulated clock forward by dt seconds.
func (t *Timeline) Advance(dt float64) {
	t.now += dt
}

// After schedules run to fire once delay seconds of simulated time have
// elapsed. alive may be nil for unconditional actions; otherwise it is
// evaluated at fire time and a false result drops the action silently.
func (t *Timeline) After(delay float64, alive func() bool, run func()) {
	if run == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	t.pending = append(t.pending, deferredAction{
		fireAt: t.now + delay,
		alive:  alive,
		run:    run,
	})
}

// Fire runs every action whose fire time has arrived, in fire-time order.
// Actions scheduled by a firing action are queued for a later poll, never
// fired in the same pass, so the due batch is stable while it runs.
func (t *Timeline) Fire() {
	if len(t.pending) == 0 {
		return
	}
	var due []deferredAction
	keep := t.pending[:0]
	for _, a := range t.pending {
		if a.fireAt <= t.now {
			due = append(due, a)
		} else {
			keep = append(keep, a)
		}
	}
	t.pending = keep
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].fireAt < due[j].fireAt })
	for _, a := range due {
		if a.alive != nil && !a.alive() {
			continue
		}
		a.run()
	}
}

// PendingLen returns the number of not-yet-fired actions.
func (t *Timeline) PendingLen() int {
	return len(t.pending)
}
