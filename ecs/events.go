package ecs

// Event is a world event consumed by the presentation layer at the end of
// each tick. Core systems only push; nothing in the core reads back.
type Event struct {
	Type string
	Data any
}

const (
	EventNotification = "notification"
	EventPhaseStarted = "phase_started"
	EventBossDefeated = "boss_defeated"
)

// NotificationEvent asks the UI layer to show a transient banner.
type NotificationEvent struct {
	Title string
	Text  string
}

// PhaseStartedEvent is emitted on every phase transition.
type PhaseStartedEvent struct {
	Boss  Entity
	Index int
	Name  string
}

// BossDefeatedEvent is emitted once when a boss's health reaches zero.
type BossDefeatedEvent struct {
	Boss Entity
	Name string
}

// EventQueue is a simple FIFO drained once per frame by the UI layer.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all pending events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
