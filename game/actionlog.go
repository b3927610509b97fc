package game

import "sync"

// LogListener is told about every line added to an ActionLog.
type LogListener func(line string)

// ActionLog keeps the latest narrative lines of a game.
type ActionLog struct {
	lock      sync.Mutex
	limit     int
	lines     []string
	listeners []LogListener
}

// NewActionLog creates a log that keeps up to limit lines. A limit of zero
// or less keeps them all.
func NewActionLog(limit int) *ActionLog {
	return &ActionLog{limit: limit}
}

// AddActionLog implements combat.Narrator.
func (l *ActionLog) AddActionLog(text string) {
	l.lock.Lock()
	l.lines = append(l.lines, text)
	if l.limit > 0 && len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	listeners := l.listeners
	l.lock.Unlock()

	for _, f := range listeners {
		f(text)
	}
}

// Subscribe registers a listener for new lines.
func (l *ActionLog) Subscribe(f LogListener) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.listeners = append(l.listeners, f)
}

// Lines returns a copy of the kept lines, oldest first.
func (l *ActionLog) Lines() []string {
	l.lock.Lock()
	defer l.lock.Unlock()

	out := make([]string, len(l.lines))
	copy(out, l.lines)

	return out
}

// Last returns the latest line or an empty string.
func (l *ActionLog) Last() string {
	l.lock.Lock()
	defer l.lock.Unlock()

	if len(l.lines) == 0 {
		return ""
	}

	return l.lines[len(l.lines)-1]
}

// Clear drops the kept lines.
func (l *ActionLog) Clear() {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.lines = nil
}
