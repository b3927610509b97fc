package sim

import (
	"container/list"
)

// EventQueue is a queue of scheduled events ordered by remaining time.
type EventQueue interface {
	// Push inserts an event after all the events that are due no later
	// than it. Any event already queued for the same key is replaced.
	Push(evt ScheduledEvent)

	// Remove deletes the event for the key. It returns false if no such
	// event is queued.
	Remove(key EventKey) bool

	// Consume removes evt if it is still the event queued for its key. An
	// event replaced by a later Push is left untouched.
	Consume(evt ScheduledEvent) bool

	// Find returns the event queued for the key.
	Find(key EventKey) (ScheduledEvent, bool)

	// Peek returns the earliest event. The queue must not be empty.
	Peek() ScheduledEvent

	// Snapshot returns a copy of all the events in order.
	Snapshot() []ScheduledEvent

	// Shift subtracts elapsed from the remaining time of every event.
	// Events that would become overdue are due immediately instead.
	Shift(elapsed VTimeInSec)

	// Clear drops every event.
	Clear()

	Len() int
}

// InsertionQueue is an EventQueue based on insertion sort. Events with the
// same time keep their insertion order.
type InsertionQueue struct {
	l     *list.List
	index map[EventKey]*list.Element
}

// NewInsertionQueue returns a new InsertionQueue
func NewInsertionQueue() *InsertionQueue {
	q := new(InsertionQueue)
	q.l = list.New()
	q.index = make(map[EventKey]*list.Element)
	return q
}

// Push add an event to the event queue
func (q *InsertionQueue) Push(evt ScheduledEvent) {
	q.Remove(evt.Key())

	var ele *list.Element
	for ele = q.l.Front(); ele != nil; ele = ele.Next() {
		if ele.Value.(ScheduledEvent).TimeRemaining > evt.TimeRemaining {
			break
		}
	}

	if ele != nil {
		q.index[evt.Key()] = q.l.InsertBefore(evt, ele)
	} else {
		q.index[evt.Key()] = q.l.PushBack(evt)
	}
}

// Remove deletes the event that belongs to the key.
func (q *InsertionQueue) Remove(key EventKey) bool {
	ele, found := q.index[key]
	if !found {
		return false
	}

	q.l.Remove(ele)
	delete(q.index, key)

	return true
}

// Consume removes evt unless it has been replaced since it was pushed.
func (q *InsertionQueue) Consume(evt ScheduledEvent) bool {
	ele, found := q.index[evt.Key()]
	if !found || ele.Value.(ScheduledEvent).seq != evt.seq {
		return false
	}

	q.l.Remove(ele)
	delete(q.index, evt.Key())

	return true
}

// Peek returns the event at the front of the queue without removing it from
// the queue.
func (q *InsertionQueue) Peek() ScheduledEvent {
	return q.l.Front().Value.(ScheduledEvent)
}

// Snapshot copies the queue content in order.
func (q *InsertionQueue) Snapshot() []ScheduledEvent {
	events := make([]ScheduledEvent, 0, q.l.Len())
	for ele := q.l.Front(); ele != nil; ele = ele.Next() {
		events = append(events, ele.Value.(ScheduledEvent))
	}

	return events
}

// Shift moves every event closer by elapsed. The relative order does not
// change.
func (q *InsertionQueue) Shift(elapsed VTimeInSec) {
	for ele := q.l.Front(); ele != nil; ele = ele.Next() {
		evt := ele.Value.(ScheduledEvent)
		evt.TimeRemaining -= elapsed
		if evt.TimeRemaining < 0 {
			evt.TimeRemaining = 0
		}
		ele.Value = evt
	}
}

// Clear empties the queue.
func (q *InsertionQueue) Clear() {
	q.l.Init()
	q.index = make(map[EventKey]*list.Element)
}

// Len return the number of events in the queue
func (q *InsertionQueue) Len() int {
	return q.l.Len()
}

// Find returns the event queued for the key.
func (q *InsertionQueue) Find(key EventKey) (ScheduledEvent, bool) {
	ele, found := q.index[key]
	if !found {
		return ScheduledEvent{}, false
	}

	return ele.Value.(ScheduledEvent), true
}
