package roster

// Behaviour is what an entity keeps doing on its turns.
type Behaviour int

// The behaviours.
const (
	BehaviourUnset Behaviour = iota
	BehaviourIdle
	BehaviourWander
	BehaviourHunt
	BehaviourUnconscious
)

var behaviourNames = map[Behaviour]string{
	BehaviourUnset:       "Unset",
	BehaviourIdle:        "Idle",
	BehaviourWander:      "Wander",
	BehaviourHunt:        "Hunt",
	BehaviourUnconscious: "Unconscious",
}

func (b Behaviour) String() string {
	if name, ok := behaviourNames[b]; ok {
		return name
	}

	return "Unknown"
}
