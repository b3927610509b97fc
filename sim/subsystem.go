package sim

import "log"

// ReturnCode tells a TargetHandler which suspended action a chosen target
// completes.
type ReturnCode int

// A Subsystem owns entities that can act. It is the only surface the
// Scheduler and the interactive layer use to drive entities.
type Subsystem interface {
	// TurnHandler performs the next action of the entity. Before returning
	// it either reschedules the entity or accepts that it will not be
	// dispatched again. Returning true stops the current advance.
	TurnHandler(handle EntityHandle, now VTimeInSec) (interrupt bool)

	// TargetHandler resumes a suspended interactive action once a target
	// has been chosen. It returns true if the action is complete.
	TargetHandler(handle EntityHandle, code ReturnCode) (done bool)

	// PeriodicHandler is notified at most once per advance when calendar
	// boundaries are crossed.
	PeriodicHandler(c Crossing)
}

// EntityNamer can be implemented by subsystems that can print the names of
// their entities.
type EntityNamer interface {
	EntityName(handle EntityHandle) string
}

// Registry maps subsystem tags to subsystems.
type Registry struct {
	subsystems map[SubsystemTag]Subsystem
	order      []SubsystemTag
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subsystems: make(map[SubsystemTag]Subsystem),
	}
}

// Register adds a subsystem. Registering a tag twice panics.
func (r *Registry) Register(tag SubsystemTag, s Subsystem) {
	if _, found := r.subsystems[tag]; found {
		log.Panicf("subsystem %s already registered", tag)
	}

	r.subsystems[tag] = s
	r.order = append(r.order, tag)
}

// Get returns the subsystem of the tag. Unknown tags panic.
func (r *Registry) Get(tag SubsystemTag) Subsystem {
	s, found := r.subsystems[tag]
	if !found {
		log.Panicf("no subsystem registered for %s", tag)
	}

	return s
}

// Has returns true if a subsystem is registered for the tag.
func (r *Registry) Has(tag SubsystemTag) bool {
	_, found := r.subsystems[tag]
	return found
}

// Tags returns the registered tags in registration order.
func (r *Registry) Tags() []SubsystemTag {
	tags := make([]SubsystemTag, len(r.order))
	copy(tags, r.order)

	return tags
}

// NameOf returns the display name of an entity, falling back to its key.
func (r *Registry) NameOf(key EventKey) string {
	s, found := r.subsystems[key.Tag]
	if !found {
		return key.String()
	}

	namer, ok := s.(EntityNamer)
	if !ok {
		return key.String()
	}

	return namer.EntityName(key.Handle)
}
