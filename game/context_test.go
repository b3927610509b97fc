package game_test

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/dice"
	"github.com/ackslab/rck/game"
	"github.com/ackslab/rck/roster"
	"github.com/ackslab/rck/sim"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func monsterAt(name string, p combat.Point) roster.Monster {
	m := game.Goblin()
	m.Name = name
	m.Position = p

	return m
}

var _ = Describe("Context", func() {
	var (
		roller *dice.ScriptedRoller
		ctx    *game.Context
		world  *roster.World
	)

	addMember := func(ch roster.Character, p combat.Point) sim.EntityHandle {
		ch.Position = p
		h := world.Characters.Add(ch)
		world.Party.Add(h)

		return h
	}

	ref := func(tag sim.SubsystemTag, h sim.EntityHandle) combat.Ref {
		return combat.Ref{Tag: tag, Handle: h}
	}

	BeforeEach(func() {
		roller = dice.NewScriptedRoller()
		ctx = game.NewContextWithRoller(game.DefaultConfig(), roller)
		world = ctx.World()
		ctx.EnterMap(roster.NewGrid(10, 10), combat.Point{})
	})

	It("should register the game after the roster", func() {
		Expect(ctx.Registry().Tags()).To(Equal([]sim.SubsystemTag{
			sim.TagCharacter, sim.TagMonster, sim.TagBase, sim.TagGame,
		}))
		Expect(ctx.Mode()).To(Equal(game.ModeMain))
		Expect(ctx.Current()).To(Equal(sim.NoEntity))
	})

	It("should only select party members", func() {
		stranger := world.Characters.Add(game.Fighter("Dax", 1))

		Expect(ctx.Select(stranger)).To(BeFalse())
		Expect(ctx.Current()).To(Equal(sim.NoEntity))
	})

	Context("with an operated fighter", func() {
		var aldo sim.EntityHandle

		BeforeEach(func() {
			aldo = addMember(game.Fighter("Aldo", 2), combat.Point{X: 1, Y: 1})
			Expect(ctx.Select(aldo)).To(BeTrue())
		})

		It("should wait for the operator when the fighter is ready", func() {
			result := ctx.AdvanceToNext()

			Expect(result.Interrupted).To(BeTrue())
			Expect(ctx.Awaiting()).To(BeTrue())

			Expect(ctx.Wait()).To(BeTrue())
			Expect(ctx.Awaiting()).To(BeFalse())

			e, found := ctx.Scheduler().Find(aldo, sim.TagCharacter)
			Expect(found).To(BeTrue())
			Expect(e.TimeRemaining).To(BeNumerically("~", 5.0/3, 1e-9))
		})

		It("should refuse to act before the fighter is ready", func() {
			Expect(ctx.Wait()).To(BeFalse())
			Expect(ctx.Move(2)).To(BeFalse())
			Expect(ctx.Fire()).To(BeFalse())
		})

		It("should move and act again later", func() {
			ctx.AdvanceToNext()

			Expect(ctx.Move(2)).To(BeTrue())

			ch, _ := world.Characters.Get(aldo)
			Expect(ch.Position).To(Equal(combat.Point{X: 2, Y: 1}))
			Expect(ctx.Awaiting()).To(BeFalse())
		})

		It("should attack a monster it steps into", func() {
			g := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 1}))
			ctx.AdvanceToNext()
			roller.Push(2)

			Expect(ctx.Move(2)).To(BeTrue())

			Expect(ctx.Log().Lines()).To(ContainElements(
				"Aldo attacks Goblin 1.", "The attack misses!"))
			ch, _ := world.Characters.Get(aldo)
			Expect(ch.Position).To(Equal(combat.Point{X: 1, Y: 1}))
			_, found := ctx.Scheduler().Find(aldo, sim.TagCharacter)
			Expect(found).To(BeTrue())
			_, found = ctx.Scheduler().Find(g, sim.TagMonster)
			Expect(found).To(BeTrue())
		})

		It("should not attack what is out of reach", func() {
			g := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 5, Y: 5}))
			ctx.AdvanceToNext()

			Expect(ctx.Attack(ref(sim.TagMonster, g))).To(BeFalse())
			Expect(ctx.Awaiting()).To(BeTrue())
		})

		Context("surrounded by goblins", func() {
			var g1, g2, g3 sim.EntityHandle

			BeforeEach(func() {
				g1 = world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 1}))
				g2 = world.Monsters.Spawn(monsterAt("Goblin 2", combat.Point{X: 3, Y: 1}))
				g3 = world.Monsters.Spawn(monsterAt("Goblin 3", combat.Point{X: 3, Y: 2}))
				ctx.AdvanceToNext()

				// Goblin 1 falls and two goblins stand next to its square.
				roller.Push(15, 4)
				Expect(ctx.Attack(ref(sim.TagMonster, g1))).To(BeTrue())
			})

			It("should wait for the cleave target", func() {
				Expect(ctx.Mode()).To(Equal(game.ModeTarget))

				t, ok := ctx.Targeting()
				Expect(ok).To(BeTrue())
				Expect(t.Pending.Code).To(Equal(combat.ReturnMeleeCleave))
				Expect(t.Pending.RemainingCleaves).To(Equal(1))
				Expect(t.Pending.Candidates).To(Equal([]combat.Ref{
					ref(sim.TagMonster, g2), ref(sim.TagMonster, g3),
				}))

				ch, _ := world.Characters.Get(aldo)
				Expect(ch.Position).To(Equal(combat.Point{X: 2, Y: 1}))
				Expect(ctx.AdvanceBy(10).NoOp).To(BeTrue())
			})

			It("should resume the chain on the chosen target", func() {
				next, ok := ctx.CycleTarget(1)
				Expect(ok).To(BeTrue())
				Expect(next).To(Equal(ref(sim.TagMonster, g3)))

				// Goblin 3 falls, then the last cleave misses Goblin 2.
				roller.Push(15, 4, 2)
				Expect(ctx.ConfirmTarget()).To(BeTrue())

				Expect(ctx.Mode()).To(Equal(game.ModeMain))
				Expect(ctx.Resolver().Attacks()).To(Equal(3))
				Expect(roller.Remaining()).To(Equal(0))
				Expect(ctx.Log().Lines()).To(ContainElements(
					"Goblin 1 falls!", "Cleave!", "Goblin 3 falls!"))
				Expect(world.Monsters.Standing()).To(Equal([]sim.EntityHandle{g2}))

				_, found := ctx.Scheduler().Find(aldo, sim.TagCharacter)
				Expect(found).To(BeTrue())
			})

			It("should wrap the target cursor", func() {
				first, _ := ctx.CycleTarget(-1)
				Expect(first).To(Equal(ref(sim.TagMonster, g3)))

				second, _ := ctx.CycleTarget(1)
				Expect(second).To(Equal(ref(sim.TagMonster, g2)))
			})

			It("should end the chain when the target selection is cancelled", func() {
				Expect(ctx.CancelTarget()).To(BeTrue())

				Expect(ctx.Mode()).To(Equal(game.ModeMain))
				_, ok := ctx.Targeting()
				Expect(ok).To(BeFalse())
				_, found := ctx.Scheduler().Find(aldo, sim.TagCharacter)
				Expect(found).To(BeTrue())
				Expect(ctx.Resolver().Attacks()).To(Equal(1))
			})
		})

		It("should look around without acting", func() {
			world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 6, Y: 6}))
			ctx.AdvanceToNext()

			Expect(ctx.Look()).To(BeTrue())
			Expect(ctx.Mode()).To(Equal(game.ModeTarget))

			Expect(ctx.ConfirmTarget()).To(BeTrue())
			Expect(ctx.Mode()).To(Equal(game.ModeMain))
			Expect(ctx.Awaiting()).To(BeTrue())
		})

		It("should not pass time in the menu", func() {
			ctx.ToggleMenu()
			Expect(ctx.Mode()).To(Equal(game.ModeMenu))
			Expect(ctx.AdvanceToNext().NoOp).To(BeTrue())

			ctx.ToggleMenu()
			Expect(ctx.AdvanceToNext().Interrupted).To(BeTrue())
		})

		It("should end the game when the last member falls", func() {
			ch, _ := world.Characters.Get(aldo)
			ch.HitPoints = 1
			g := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 1}))

			roller.Push(14, 3)
			done := ctx.Resolver().ResolveAttacks(
				ref(sim.TagMonster, g), ref(sim.TagCharacter, aldo), false)

			Expect(done).To(BeTrue())
			Expect(ctx.Mode()).To(Equal(game.ModeEnd))
			Expect(ctx.Current()).To(Equal(sim.NoEntity))
			Expect(ctx.Scheduler().Len()).To(Equal(0))
			Expect(ctx.Log().Lines()).To(ContainElements("Aldo falls!", "Game over!"))
			Expect(ctx.Decide()).To(Equal(game.OutcomeDefeat))
			Expect(ctx.AdvanceToNext().NoOp).To(BeTrue())
		})

		It("should leave the queue empty when a monster ends the game", func() {
			ch, _ := world.Characters.Get(aldo)
			ch.HitPoints = 1
			g := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 1}))
			m, _ := world.Monsters.Get(g)
			m.Behaviour = roster.BehaviourHunt
			ctx.Scheduler().Reschedule(aldo, sim.TagCharacter, 50)
			ctx.Scheduler().Reschedule(g, sim.TagMonster, 1)

			roller.Push(14, 3)
			result := ctx.AdvanceToNext()

			Expect(result.Dispatched).To(Equal(1))
			Expect(ctx.Mode()).To(Equal(game.ModeEnd))
			Expect(ctx.Scheduler().Len()).To(Equal(0))
			Expect(ctx.Decide()).To(Equal(game.OutcomeDefeat))
		})

		Context("with a companion", func() {
			var brin sim.EntityHandle

			BeforeEach(func() {
				brin = addMember(game.Thief("Brin", 1), combat.Point{X: 1, Y: 2})
			})

			It("should hand the control over when the fighter falls", func() {
				ch, _ := world.Characters.Get(aldo)
				ch.HitPoints = 1
				g := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 1}))

				// The goblin then cleaves into Brin and misses.
				roller.Push(14, 3, 1)
				ctx.Resolver().ResolveAttacks(
					ref(sim.TagMonster, g), ref(sim.TagCharacter, aldo), false)

				Expect(ctx.Current()).To(Equal(brin))
				Expect(ctx.Mode()).To(Equal(game.ModeMain))
				Expect(ctx.Log().Lines()).NotTo(ContainElement("Game over!"))
			})

			It("should stop the batch when a monster fells the operated fighter", func() {
				ch, _ := world.Characters.Get(aldo)
				ch.HitPoints = 1
				g1 := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 1}))
				g2 := world.Monsters.Spawn(monsterAt("Goblin 2", combat.Point{X: 8, Y: 8}))
				m1, _ := world.Monsters.Get(g1)
				m2, _ := world.Monsters.Get(g2)
				m1.Behaviour = roster.BehaviourHunt
				m2.Behaviour = roster.BehaviourIdle

				scheduler := ctx.Scheduler()
				scheduler.Reschedule(aldo, sim.TagCharacter, 50)
				scheduler.Reschedule(brin, sim.TagCharacter, 50)
				scheduler.Reschedule(g1, sim.TagMonster, 1)
				scheduler.Reschedule(g2, sim.TagMonster, 2)

				// The goblin then cleaves into Brin and misses.
				roller.Push(14, 3, 1)
				result := ctx.AdvanceBy(5)

				Expect(result.Interrupted).To(BeTrue())
				Expect(result.Dispatched).To(Equal(1))
				Expect(ctx.Current()).To(Equal(brin))
				Expect(m2.Behaviour).To(Equal(roster.BehaviourIdle))
				_, found := scheduler.Find(g2, sim.TagMonster)
				Expect(found).To(BeTrue())
			})

			It("should switch and let the former character act alone", func() {
				ctx.AdvanceToNext()
				Expect(ctx.Awaiting()).To(BeTrue())

				Expect(ctx.SwitchCharacter()).To(BeTrue())

				Expect(ctx.Current()).To(Equal(brin))
				e, found := ctx.Scheduler().Find(aldo, sim.TagCharacter)
				Expect(found).To(BeTrue())
				Expect(e.TimeRemaining).To(Equal(sim.RegisterDelay))
			})

			It("should hand the control over when the fighter dies", func() {
				ch, _ := world.Characters.Get(aldo)
				ch.Conditions.Set(roster.ConditionDying, 5)

				registry := ctx.Registry()
				for _, tag := range registry.Tags() {
					registry.Get(tag).PeriodicHandler(sim.Crossing{Rounds: 1})
				}

				Expect(ch.Active).To(BeFalse())
				Expect(ctx.Current()).To(Equal(brin))
				Expect(ctx.LastCrossing()).To(Equal(sim.Crossing{Rounds: 1}))
			})

			It("should shoot with the bow", func() {
				ctx.Select(brin)
				g := world.Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 5, Y: 2}))

				// Aldo acts on his own, then Brin waits for the operator.
				ctx.AdvanceToNext()
				Expect(ctx.Awaiting()).To(BeTrue())

				Expect(ctx.Fire()).To(BeTrue())
				t, _ := ctx.Targeting()
				Expect(t.Pending.Code).To(Equal(combat.ReturnMissile))
				Expect(t.Pending.Candidates).To(Equal([]combat.Ref{ref(sim.TagMonster, g)}))

				roller.Push(16, 4)
				Expect(ctx.ConfirmTarget()).To(BeTrue())

				Expect(ctx.Mode()).To(Equal(game.ModeMain))
				Expect(world.Monsters.Standing()).To(BeEmpty())
				Expect(ctx.Decide()).To(Equal(game.OutcomeVictory))
			})
		})
	})
})
