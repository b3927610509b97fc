package roster

import (
	"github.com/ackslab/rck/combat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Conditions", func() {
	It("should decay timed conditions", func() {
		c := Conditions{}
		c.Set(ConditionInjured, Permanent)
		c.Set(ConditionRecovering, 100)
		c.Set("Stunned", 20)
		c.Set(ConditionDying, 30)

		Expect(c.Decay(40)).To(Equal([]string{ConditionDying, "Stunned"}))
		Expect(c.Has(ConditionInjured)).To(BeTrue())
		Expect(c.Has("Stunned")).To(BeFalse())
		Expect(c.Has(ConditionDying)).To(BeTrue())
		Expect(c[ConditionRecovering]).To(BeNumerically("~", 60, 1e-9))
	})

	It("should reduce and drop conditions", func() {
		c := Conditions{ConditionRecovering: 100, ConditionInjured: Permanent}

		c.Reduce(ConditionRecovering, 40)
		Expect(c[ConditionRecovering]).To(BeNumerically("~", 60, 1e-9))

		c.Reduce(ConditionRecovering, 60)
		Expect(c.Has(ConditionRecovering)).To(BeFalse())

		c.Reduce(ConditionInjured, 1000)
		Expect(c.Has(ConditionInjured)).To(BeTrue())

		c.Remove(ConditionInjured)
		Expect(c).To(BeEmpty())
	})
})

var _ = Describe("Grid", func() {
	It("should track occupants", func() {
		g := NewGrid(4, 4)
		ref := monsterRef(0)

		g.Place(ref, combat.Point{}, combat.Point{X: 1, Y: 1})
		Expect(g.Free(combat.Point{X: 1, Y: 1})).To(BeFalse())

		g.Place(ref, combat.Point{X: 1, Y: 1}, combat.Point{X: 2, Y: 1})
		Expect(g.Free(combat.Point{X: 1, Y: 1})).To(BeTrue())

		occupant, found := g.Occupant(combat.Point{X: 2, Y: 1})
		Expect(found).To(BeTrue())
		Expect(occupant).To(Equal(ref))

		g.Leave(ref, combat.Point{X: 2, Y: 1})
		Expect(g.Free(combat.Point{X: 2, Y: 1})).To(BeTrue())
		Expect(g.Free(combat.Point{X: 4, Y: 0})).To(BeFalse())
	})

	It("should keep the fallen when someone steps over them", func() {
		g := NewGrid(4, 4)
		fallen, cleaver := characterRef(0), monsterRef(0)
		cell := combat.Point{X: 1, Y: 1}

		g.Place(fallen, cell, cell)
		g.Place(cleaver, combat.Point{X: 2, Y: 1}, cell)

		top, _ := g.Occupant(cell)
		Expect(top).To(Equal(cleaver))

		g.Place(cleaver, cell, combat.Point{X: 1, Y: 2})

		Expect(g.Free(cell)).To(BeFalse())
		top, _ = g.Occupant(cell)
		Expect(top).To(Equal(fallen))

		g.Leave(fallen, cell)
		Expect(g.Free(cell)).To(BeTrue())
	})

	It("should find neighbours", func() {
		p := combat.Point{X: 5, Y: 5}

		Expect(Neighbour(p, 0)).To(Equal(combat.Point{X: 5, Y: 4}))
		Expect(Neighbour(p, 3)).To(Equal(combat.Point{X: 6, Y: 6}))
		Expect(Neighbour(p, 9)).To(Equal(combat.Point{X: 6, Y: 4}))
		Expect(StepToward(p, combat.Point{X: 1, Y: 5})).To(Equal(combat.Point{X: 4, Y: 5}))
		Expect(DirectionOf(p, combat.Point{X: 4, Y: 5})).To(Equal(6))
		Expect(DirectionOf(p, combat.Point{X: 7, Y: 5})).To(Equal(-1))
	})

	It("should see everything by default", func() {
		g := NewGrid(4, 4)
		Expect(g.Visible(combat.Point{}, combat.Point{X: 3, Y: 3})).To(BeTrue())

		g.LineOfSight = func(from, to combat.Point) bool { return false }
		Expect(g.Visible(combat.Point{}, combat.Point{X: 3, Y: 3})).To(BeFalse())
	})
})
