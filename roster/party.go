package roster

import (
	"github.com/ackslab/rck/sim"
)

// Party is the ordered list of player characters.
type Party struct {
	members    []sim.EntityHandle
	characters *Characters
}

// Members returns the party members in order.
func (p *Party) Members() []sim.EntityHandle {
	out := make([]sim.EntityHandle, len(p.members))
	copy(out, p.members)

	return out
}

// Add appends a character to the party.
func (p *Party) Add(h sim.EntityHandle) {
	if p.Has(h) {
		return
	}

	p.members = append(p.members, h)
}

// Has returns true if the character belongs to the party.
func (p *Party) Has(h sim.EntityHandle) bool {
	return p.indexOf(h) >= 0
}

// Remove takes a character out of the party.
func (p *Party) Remove(h sim.EntityHandle) {
	i := p.indexOf(h)
	if i < 0 {
		return
	}

	p.members = append(p.members[:i], p.members[i+1:]...)
}

// NextCapable returns the member after current that is still conscious,
// going round the party. It returns sim.NoEntity if no other member can
// act. Given NoEntity, it returns the first member.
func (p *Party) NextCapable(current sim.EntityHandle) sim.EntityHandle {
	if len(p.members) == 0 {
		return sim.NoEntity
	}

	if current == sim.NoEntity {
		return p.members[0]
	}

	start := p.indexOf(current)
	for step := 1; step <= len(p.members); step++ {
		h := p.members[(start+step+len(p.members))%len(p.members)]
		if h == current {
			break
		}

		if p.characters.capable(h) {
			return h
		}
	}

	return sim.NoEntity
}

func (p *Party) indexOf(h sim.EntityHandle) int {
	for i, m := range p.members {
		if m == h {
			return i
		}
	}

	return -1
}
