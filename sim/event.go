package sim

import (
	"fmt"
	"math"
)

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// IsValidDuration returns true if t can be used to advance the simulation.
func IsValidDuration(t VTimeInSec) bool {
	f := float64(t)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// EntityHandle identifies an entity inside the subsystem that owns it.
//
// Handles are only meaningful together with a SubsystemTag. The zero handle
// is a valid entity; use NoEntity for "absent".
type EntityHandle int

// NoEntity is the sentinel handle meaning that no entity is referenced.
const NoEntity EntityHandle = -1

// Valid returns true if the handle refers to an entity.
func (h EntityHandle) Valid() bool {
	return h >= 0
}

// SubsystemTag names the subsystem that owns an entity.
type SubsystemTag int

// The subsystems that can own schedulable entities.
const (
	TagGame SubsystemTag = iota - 1
	TagCharacter
	TagMonster
	TagMap
	TagParty
	TagBase
)

var tagNames = map[SubsystemTag]string{
	TagGame:      "Game",
	TagCharacter: "Character",
	TagMonster:   "Monster",
	TagMap:       "Map",
	TagParty:     "Party",
	TagBase:      "Base",
}

func (t SubsystemTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}

	return fmt.Sprintf("SubsystemTag(%d)", int(t))
}

// EventKey is the (handle, subsystem) pair that identifies a scheduled event.
// The queue keeps at most one event per key.
type EventKey struct {
	Handle EntityHandle
	Tag    SubsystemTag
}

func (k EventKey) String() string {
	return fmt.Sprintf("%s#%d", k.Tag, k.Handle)
}

// A ScheduledEvent records that an entity becomes ready to act after
// TimeRemaining simulated seconds.
type ScheduledEvent struct {
	Handle        EntityHandle
	Tag           SubsystemTag
	TimeRemaining VTimeInSec

	seq uint64
}

// Key returns the identity of the event.
func (e ScheduledEvent) Key() EventKey {
	return EventKey{Handle: e.Handle, Tag: e.Tag}
}
