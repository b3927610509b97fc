package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/ackslab/rck/game"
	"github.com/ackslab/rck/rck/cmd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func run(args ...string) (string, error) {
	out := bytes.NewBuffer(nil)

	root := cmd.NewRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

var _ = Describe("Command line", func() {
	BeforeEach(func() {
		for _, key := range []string{
			game.EnvSeed, game.EnvIdleMovement, game.EnvTraceFile,
			game.EnvRecordDB, game.EnvMonitorPort, game.EnvLogLimit,
		} {
			if old, ok := os.LookupEnv(key); ok {
				DeferCleanup(os.Setenv, key, old)
			} else {
				DeferCleanup(os.Unsetenv, key)
			}
			os.Unsetenv(key)
		}
	})

	Context("calendar", func() {
		It("should print the date of a clock value", func() {
			out, err := run("calendar", "90061")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("Y0 M0 D1 01:01:01\n"))
		})

		It("should print the crossed boundaries", func() {
			out, err := run("calendar", "3600", "0")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(
				"rounds 360, turns 6, hours 1, days 0, weeks 0, months 0"))
		})

		It("should list the periods", func() {
			out, err := run("calendar", "0", "--periods")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("turn   600"))
			Expect(out).To(ContainSubstring("year   31104000"))
		})

		It("should reject bad clock values", func() {
			_, err := run("calendar", "soon")
			Expect(err).To(HaveOccurred())

			_, err = run("calendar", "10", "20")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("skirmish", func() {
		It("should play a seeded skirmish", func() {
			out, err := run("skirmish", "--seed", "7", "--quiet")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix("Outcome: "))
			Expect(out).To(ContainSubstring("seed 7"))
		})

		It("should replay the same seed", func() {
			first, err := run("skirmish", "--seed", "11", "--limit", "600")
			Expect(err).NotTo(HaveOccurred())

			second, err := run("skirmish", "--seed", "11", "--limit", "600")
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(first).To(ContainSubstring(" attacks "))
		})

		It("should take the seed from an env file", func() {
			env := filepath.Join(GinkgoT().TempDir(), "game.env")
			Expect(os.WriteFile(env, []byte("RCK_SEED=5\n"), 0o644)).To(Succeed())

			out, err := run("skirmish", "--env", env, "--quiet")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("seed 5"))
		})

		It("should write the queue trace", func() {
			trace := filepath.Join(GinkgoT().TempDir(), "queue.log")

			_, err := run("skirmish", "--seed", "3", "--quiet",
				"--limit", "60", "--trace", trace)
			Expect(err).NotTo(HaveOccurred())

			content, err := os.ReadFile(trace)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("Scheduler: DUMPING TIMES"))
			Expect(string(content)).To(ContainSubstring("Character(Aldo)"))
		})

		It("should log the dispatched turns", func() {
			out, err := run("skirmish", "--seed", "3", "--quiet",
				"--limit", "30", "--log-events")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Aldo"))
		})

		It("should record the run", func() {
			db := filepath.Join(GinkgoT().TempDir(), "run")

			_, err := run("skirmish", "--seed", "3", "--quiet",
				"--limit", "60", "--record", db)
			Expect(err).NotTo(HaveOccurred())

			info, err := os.Stat(db + ".sqlite3")
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Size()).To(BeNumerically(">", 0))
		})

		It("should report a recorded run", func() {
			db := filepath.Join(GinkgoT().TempDir(), "run")

			_, err := run("skirmish", "--seed", "3", "--quiet",
				"--limit", "60", "--record", db)
			Expect(err).NotTo(HaveOccurred())

			out, err := run("report", db, "--narrative", "--limit", "2")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`Seed: +3\n`))
			Expect(out).To(MatchRegexp(`Outcome: +\w+\n`))
			Expect(out).To(MatchRegexp(`Turns: [1-9]\d*, \d+ interrupted\n`))
			Expect(out).To(ContainSubstring("Crossings: "))
			Expect(out).To(MatchRegexp(`Narrative lines: [1-9]\d*\n`))
			Expect(out).To(MatchRegexp(`(?m)^\[ *\d+\.\d{2}\] `))

			again, err := run("report", db+".sqlite3")
			Expect(err).NotTo(HaveOccurred())
			Expect(again).NotTo(MatchRegexp(`(?m)^\[`))
		})

		It("should refuse to report a missing recording", func() {
			_, err := run("report", filepath.Join(GinkgoT().TempDir(), "none"))

			Expect(err).To(HaveOccurred())
		})

		It("should serve the monitor while playing", func() {
			out, err := run("skirmish", "--seed", "3", "--quiet",
				"--limit", "60", "--monitor")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Outcome: "))
		})

		DescribeTable("should refuse bad options",
			func(args ...string) {
				_, err := run(append([]string{"skirmish"}, args...)...)
				Expect(err).To(HaveOccurred())
			},
			Entry("tiny map", "--width", "2"),
			Entry("no monsters", "--goblins", "0", "--trolls", "0"),
			Entry("no level", "--level", "0"),
			Entry("no idle movement", "--idle-movement", "-1"),
			Entry("no time", "--limit", "0"),
		)
	})
})
