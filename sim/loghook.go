package sim

import (
	"log"
)

// A LogHook is a hook that is resonsible for recording information from the
// simulation
type LogHook interface {
	Hook
}

// LogHookBase proovides the common logic for all LogHooks
type LogHookBase struct {
	*log.Logger
	registry *Registry
}

func (h *LogHookBase) name(key EventKey) string {
	if h.registry == nil {
		return key.String()
	}

	return h.registry.NameOf(key)
}
