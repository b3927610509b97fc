package sim

import (
	"log"
)

// RegisterDelay is how long a newly registered entity waits before its first
// turn.
const RegisterDelay VTimeInSec = 0.01

// AdvanceResult describes what one advance did.
type AdvanceResult struct {
	// NoOp is true if the queue was empty and nothing happened.
	NoOp bool

	// Interrupted is true if a TurnHandler stopped the batch.
	Interrupted bool

	// Dispatched counts the TurnHandler calls.
	Dispatched int

	// Elapsed is how far the master clock moved.
	Elapsed VTimeInSec

	// Crossing is the calendar boundary crossing caused by the advance.
	Crossing Crossing
}

// A Scheduler owns the event queue and the master clock. It dispatches due
// events to the subsystems one after another on the calling goroutine.
//
// Times passed to Reschedule are measured from the start of the current
// advance, which is also the time given to the TurnHandler. Outside of an
// advance that origin is the current master clock.
type Scheduler struct {
	HookableBase

	registry   *Registry
	queue      EventQueue
	masterTime VTimeInSec

	nextSeq    uint64
	advancing  bool
	dispatchAt VTimeInSec
	generation int
}

// NewScheduler creates a Scheduler that dispatches to the subsystems of the
// registry.
func NewScheduler(registry *Registry) *Scheduler {
	s := new(Scheduler)

	s.registry = registry
	s.queue = NewInsertionQueue()

	return s
}

// Registry returns the subsystem registry used for dispatching.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Now returns the master clock. During an advance it includes the time of
// the event being dispatched.
func (s *Scheduler) Now() VTimeInSec {
	return s.masterTime + s.dispatchAt
}

// Calendar returns the master clock broken down into calendar units.
func (s *Scheduler) Calendar() DateTime {
	return CalendarOf(s.Now())
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// Pending returns a copy of the pending events in dispatch order.
func (s *Scheduler) Pending() []ScheduledEvent {
	return s.queue.Snapshot()
}

// Find returns the pending event of an entity.
func (s *Scheduler) Find(handle EntityHandle, tag SubsystemTag) (
	ScheduledEvent, bool,
) {
	return s.queue.Find(EventKey{Handle: handle, Tag: tag})
}

// Register schedules an entity that just entered the simulation to act
// almost immediately.
func (s *Scheduler) Register(handle EntityHandle, tag SubsystemTag) {
	s.Reschedule(handle, tag, s.dispatchAt+RegisterDelay)
}

// Reschedule replaces the pending event of an entity with one due at time.
// An entity that has no pending event is simply inserted.
func (s *Scheduler) Reschedule(
	handle EntityHandle,
	tag SubsystemTag,
	time VTimeInSec,
) {
	if !handle.Valid() {
		log.Panicf("cannot schedule invalid entity handle %d", handle)
	}

	s.registry.Get(tag)

	if !IsValidDuration(time) {
		log.Panicf("cannot schedule %s#%d at invalid time %v", tag, handle, time)
	}

	if time < s.dispatchAt {
		log.Panicf(
			"scheduling %s#%d at %.4f, earlier than current time %.4f",
			tag, handle, time, s.dispatchAt,
		)
	}

	s.nextSeq++
	s.queue.Push(ScheduledEvent{
		Handle:        handle,
		Tag:           tag,
		TimeRemaining: time,
		seq:           s.nextSeq,
	})

	s.queueChanged()
}

// Deregister drops the pending event of an entity, if any.
func (s *Scheduler) Deregister(handle EntityHandle, tag SubsystemTag) {
	if s.queue.Remove(EventKey{Handle: handle, Tag: tag}) {
		s.queueChanged()
	}
}

// Clear drops every pending event, keeping the master clock. If called
// during an advance, the rest of the batch is not dispatched.
func (s *Scheduler) Clear() {
	s.queue.Clear()
	s.generation++
	s.queueChanged()
}

// Generation counts the calls to Clear. A turn handler that sees it change
// while acting knows the queue was dropped under it.
func (s *Scheduler) Generation() int {
	return s.generation
}

// AdvanceToNext advances to the earliest pending event and dispatches every
// event due at that time.
func (s *Scheduler) AdvanceToNext() AdvanceResult {
	if s.queue.Len() == 0 {
		return s.advance(0, true)
	}

	return s.advance(s.queue.Peek().TimeRemaining, true)
}

// AdvanceBy dispatches the events due within duration. It returns early if
// a TurnHandler interrupts.
func (s *Scheduler) AdvanceBy(duration VTimeInSec) AdvanceResult {
	if !IsValidDuration(duration) {
		log.Panicf("cannot advance by %v", duration)
	}

	return s.advance(duration, false)
}

func (s *Scheduler) advance(duration VTimeInSec, toNext bool) AdvanceResult {
	if s.advancing {
		log.Panic("cannot advance the scheduler from inside a dispatch")
	}

	result := AdvanceResult{}

	if s.queue.Len() == 0 {
		result.NoOp = true
		return result
	}

	s.advancing = true
	defer func() {
		s.advancing = false
		s.dispatchAt = 0
	}()

	snapshot := s.queue.Snapshot()
	generation := s.generation

	elapsed := duration
	if toNext {
		elapsed = snapshot[0].TimeRemaining
	}

	for _, evt := range snapshot {
		if evt.TimeRemaining > duration {
			break
		}

		elapsed = evt.TimeRemaining
		s.dispatchAt = evt.TimeRemaining

		if s.dispatch(evt) {
			result.Interrupted = true
		}
		result.Dispatched++

		if result.Interrupted || s.generation != generation {
			break
		}
	}

	s.dispatchAt = 0
	s.finishAdvance(elapsed, &result)

	return result
}

func (s *Scheduler) dispatch(evt ScheduledEvent) bool {
	s.queue.Consume(evt)

	hookCtx := HookCtx{
		Domain: s,
		Now:    s.Now(),
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	s.InvokeHook(hookCtx)

	interrupt := s.registry.Get(evt.Tag).TurnHandler(
		evt.Handle, evt.TimeRemaining)

	hookCtx.Pos = HookPosAfterEvent
	hookCtx.Detail = interrupt
	s.InvokeHook(hookCtx)

	return interrupt
}

func (s *Scheduler) finishAdvance(elapsed VTimeInSec, result *AdvanceResult) {
	s.queue.Shift(elapsed)
	s.queueChanged()

	before := s.masterTime
	s.masterTime += elapsed
	result.Elapsed = elapsed

	result.Crossing = CrossingBetween(before, s.masterTime)
	if result.Crossing.Any() {
		s.notifyPeriodic(result.Crossing)
	}

	s.InvokeHook(HookCtx{
		Domain: s,
		Now:    s.masterTime,
		Pos:    HookPosAfterAdvance,
		Item:   *result,
	})
}

func (s *Scheduler) notifyPeriodic(c Crossing) {
	s.InvokeHook(HookCtx{
		Domain: s,
		Now:    s.masterTime,
		Pos:    HookPosPeriodic,
		Item:   c,
	})

	for _, tag := range s.registry.Tags() {
		s.registry.Get(tag).PeriodicHandler(c)
	}
}

func (s *Scheduler) queueChanged() {
	if len(s.Hooks) == 0 {
		return
	}

	s.InvokeHook(HookCtx{
		Domain: s,
		Now:    s.Now(),
		Pos:    HookPosQueueChanged,
		Item:   s.queue,
	})
}
