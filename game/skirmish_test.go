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

func seeded(seed int64) *game.Context {
	config := game.DefaultConfig()
	config.Seed = seed
	config.LogLimit = 0

	return game.NewContext(config)
}

var _ = Describe("Skirmish", func() {
	It("should set up both sides", func() {
		ctx := seeded(1)
		game.SetUpSkirmish(ctx, game.DefaultSkirmish())

		w := ctx.World()
		Expect(w.Party.Members()).To(HaveLen(3))
		Expect(w.Monsters.Standing()).To(HaveLen(6))
		Expect(ctx.Current()).To(Equal(w.Party.Members()[0]))
		Expect(ctx.Scheduler().Len()).To(Equal(9))
		Expect(ctx.Decide()).To(Equal(game.OutcomeUndecided))
	})

	It("should play to an end", func() {
		ctx := seeded(7)
		game.SetUpSkirmish(ctx, game.DefaultSkirmish())

		outcome := game.RunSkirmish(ctx, game.NewAutopilot(ctx), sim.PeriodLength(sim.PeriodHour))

		Expect(outcome).To(BeElementOf(game.OutcomeVictory, game.OutcomeDefeat, game.OutcomeTimeout))
		Expect(ctx.Resolver().Attacks()).To(BeNumerically(">", 0))
	})

	It("should play the same game from the same seed", func() {
		play := func() []string {
			ctx := seeded(11)
			game.SetUpSkirmish(ctx, game.DefaultSkirmish())
			game.RunSkirmish(ctx, game.NewAutopilot(ctx), 600)

			return ctx.Log().Lines()
		}

		Expect(play()).To(Equal(play()))
	})

	It("should stall when nothing is scheduled", func() {
		ctx := seeded(1)
		ctx.World().Monsters.Spawn(game.Goblin())
		ctx.Scheduler().Clear()

		Expect(game.RunSkirmish(ctx, game.NewAutopilot(ctx), 100)).To(Equal(game.OutcomeStalled))
	})
})

var _ = Describe("Autopilot", func() {
	var (
		roller *dice.ScriptedRoller
		ctx    *game.Context
		pilot  *game.Autopilot
		aldo   sim.EntityHandle
	)

	BeforeEach(func() {
		roller = dice.NewScriptedRoller()
		ctx = game.NewContextWithRoller(game.DefaultConfig(), roller)
		pilot = game.NewAutopilot(ctx)
		ctx.EnterMap(roster.NewGrid(10, 10), combat.Point{})

		ch := game.Fighter("Aldo", 1)
		ch.Position = combat.Point{X: 1, Y: 1}
		aldo = ctx.World().Characters.Add(ch)
		ctx.World().Party.Add(aldo)
		ctx.Select(aldo)
	})

	It("should not act until the character is ready", func() {
		Expect(pilot.Act()).To(BeFalse())
	})

	It("should wait with nobody around", func() {
		ctx.AdvanceToNext()

		Expect(pilot.Act()).To(BeTrue())
		Expect(ctx.Awaiting()).To(BeFalse())
	})

	It("should close in on the nearest enemy", func() {
		ctx.World().Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 5, Y: 5}))
		ctx.AdvanceToNext()

		Expect(pilot.Act()).To(BeTrue())

		ch, _ := ctx.World().Characters.Get(aldo)
		Expect(ch.Position).To(Equal(combat.Point{X: 2, Y: 2}))
	})

	It("should attack an adjacent enemy", func() {
		ctx.World().Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 2, Y: 2}))
		ctx.AdvanceToNext()
		roller.Push(1)

		Expect(pilot.Act()).To(BeTrue())
		Expect(ctx.Log().Last()).To(Equal("The attack misses!"))
	})

	It("should leave a look and confirm attack targets", func() {
		ctx.World().Monsters.Spawn(monsterAt("Goblin 1", combat.Point{X: 5, Y: 5}))
		ctx.AdvanceToNext()
		ctx.Look()

		Expect(pilot.Act()).To(BeTrue())
		Expect(ctx.Mode()).To(Equal(game.ModeMain))
		Expect(ctx.Awaiting()).To(BeTrue())
	})
})
