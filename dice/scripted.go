package dice

import "log"

// ScriptedRoller returns preset die faces in order. It is meant for tests
// that need exact rolls.
//
// Each die rolled consumes one face, so Roll(2, 6, 1) consumes two faces
// and returns their sum plus one. Rolling past the script panics.
type ScriptedRoller struct {
	faces []int
	next  int
	calls []Spec
}

// NewScriptedRoller creates a roller that returns the faces in order.
func NewScriptedRoller(faces ...int) *ScriptedRoller {
	return &ScriptedRoller{faces: faces}
}

// Push appends faces to the script.
func (r *ScriptedRoller) Push(faces ...int) {
	r.faces = append(r.faces, faces...)
}

// Roll implements Roller.
func (r *ScriptedRoller) Roll(nbDice, nbFaces, addBonus int) int {
	r.calls = append(r.calls, Spec{Count: nbDice, Sides: nbFaces, Bonus: addBonus})

	total := addBonus
	for i := 0; i < nbDice; i++ {
		if r.next >= len(r.faces) {
			log.Panicf("scripted roller exhausted after %d faces", len(r.faces))
		}

		total += r.faces[r.next]
		r.next++
	}

	return total
}

// Calls returns every Roll request received, in order.
func (r *ScriptedRoller) Calls() []Spec {
	return r.calls
}

// Remaining returns how many faces are left in the script.
func (r *ScriptedRoller) Remaining() int {
	return len(r.faces) - r.next
}
