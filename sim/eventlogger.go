package sim

import (
	"log"
)

// EventLogger is an hook that prints one line for every dispatched turn and
// every calendar crossing.
type EventLogger struct {
	LogHookBase
}

// NewEventLogger returns a new EventLogger which will write in to the logger.
// The registry is only used for names and may be nil.
func NewEventLogger(logger *log.Logger, registry *Registry) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger
	h.registry = registry
	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosAfterEvent:
		evt, ok := ctx.Item.(ScheduledEvent)
		if !ok {
			return
		}

		suffix := ""
		if interrupt, _ := ctx.Detail.(bool); interrupt {
			suffix = ", interrupt"
		}

		h.Logger.Printf("%.4f, %s -> %s%s",
			ctx.Now, evt.Tag, h.name(evt.Key()), suffix)
	case HookPosPeriodic:
		c, ok := ctx.Item.(Crossing)
		if !ok {
			return
		}

		h.Logger.Printf("%.4f, periodic %+v", ctx.Now, c)
	}
}
