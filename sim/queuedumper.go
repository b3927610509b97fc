package sim

import (
	"fmt"
	"log"
	"os"
)

// QueueDumper is a hook that writes every pending event to a logger each
// time the event queue changes.
type QueueDumper struct {
	logger   *log.Logger
	registry *Registry
	file     *os.File
}

// NewQueueDumper returns a QueueDumper that writes into the logger. The
// registry is used to print entity names and may be nil.
func NewQueueDumper(logger *log.Logger, registry *Registry) *QueueDumper {
	h := new(QueueDumper)
	h.logger = logger
	h.registry = registry
	return h
}

// NewQueueDumpFile opens, or creates, a text file and appends queue dumps to
// it.
func NewQueueDumpFile(path string, registry *Registry) (*QueueDumper, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open queue dump %s: %w", path, err)
	}

	h := NewQueueDumper(log.New(f, "", log.LstdFlags), registry)
	h.file = f

	return h, nil
}

// Close closes the underlying file, if the dumper owns one.
func (h *QueueDumper) Close() error {
	if h.file == nil {
		return nil
	}

	return h.file.Close()
}

// Func writes the queue content into the logger
func (h *QueueDumper) Func(ctx HookCtx) {
	if ctx.Pos != HookPosQueueChanged {
		return
	}

	queue, ok := ctx.Item.(EventQueue)
	if !ok {
		return
	}

	h.Dump(ctx.Now, queue.Snapshot())
}

// Dump writes one block describing the events.
func (h *QueueDumper) Dump(now VTimeInSec, events []ScheduledEvent) {
	h.logger.Printf("Scheduler: ============= %.4f", now)
	h.logger.Printf("Scheduler: DUMPING TIMES (%d)", len(events))

	for _, evt := range events {
		name := evt.Key().String()
		if h.registry != nil {
			name = h.registry.NameOf(evt.Key())
		}

		h.logger.Printf("Scheduler: %s(%s), %.4f",
			evt.Tag, name, evt.TimeRemaining)
	}
}
