// Package notify queues transient user-facing messages with per-message
// auto-dismiss timers.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays queued before it dismisses
// itself.
const DefaultTTL = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	ID   string
	Text string
	Kind Kind
}

// Queue holds notifications in insertion order. Every notification schedules
// its own removal; dismissing it early cancels the pending timer so the slot
// is never removed twice.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Notification
	timers map[string]*time.Timer
}

func NewQueue() *Queue {
	return NewQueueWithTTL(DefaultTTL)
}

func NewQueueWithTTL(ttl time.Duration) *Queue {
	return &Queue{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Show appends a notification and returns its id. Identical messages are not
// deduplicated.
func (q *Queue) Show(text string, kind Kind) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := uuid.NewString()
	q.items = append(q.items, Notification{ID: id, Text: text, Kind: kind})
	q.timers[id] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(id)
	})
	return id
}

// Success queues a success notification.
func (q *Queue) Success(text string) string {
	return q.Show(text, KindSuccess)
}

// Error queues an error notification.
func (q *Queue) Error(text string) string {
	return q.Show(text, KindError)
}

// Dismiss removes the notification with the given id and cancels its
// pending auto-dismiss. Unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Notifications returns a snapshot in insertion order.
func (q *Queue) Notifications() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := make([]Notification, len(q.items))
	copy(snapshot, q.items)
	return snapshot
}

// Drain removes and returns everything currently queued, cancelling the
// pending timers. Line-oriented front-ends use it to flush outcomes after
// each action.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.items
	q.items = nil
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	return drained
}
