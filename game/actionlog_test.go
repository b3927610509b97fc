package game_test

import (
	"github.com/ackslab/rck/game"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ActionLog", func() {
	It("should keep the latest lines", func() {
		l := game.NewActionLog(2)

		l.AddActionLog("one")
		l.AddActionLog("two")
		l.AddActionLog("three")

		Expect(l.Lines()).To(Equal([]string{"two", "three"}))
		Expect(l.Last()).To(Equal("three"))
	})

	It("should keep everything without limit", func() {
		l := game.NewActionLog(0)
		for i := 0; i < 500; i++ {
			l.AddActionLog("line")
		}

		Expect(l.Lines()).To(HaveLen(500))
	})

	It("should tell the listeners", func() {
		l := game.NewActionLog(1)
		var heard []string
		l.Subscribe(func(line string) { heard = append(heard, line) })

		l.AddActionLog("one")
		l.AddActionLog("two")

		Expect(heard).To(Equal([]string{"one", "two"}))
	})

	It("should clear", func() {
		l := game.NewActionLog(5)
		l.AddActionLog("one")
		l.Clear()

		Expect(l.Lines()).To(BeEmpty())
		Expect(l.Last()).To(BeEmpty())
	})
})
