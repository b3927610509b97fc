package game_test

import (
	"os"
	"path/filepath"

	"github.com/ackslab/rck/game"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var configEnv = []string{
	game.EnvSeed, game.EnvIdleMovement, game.EnvTraceFile,
	game.EnvRecordDB, game.EnvMonitorPort, game.EnvLogLimit,
}

func writeEnvFile(content string) string {
	path := filepath.Join(GinkgoT().TempDir(), "test.env")
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

	return path
}

var _ = Describe("Config", func() {
	BeforeEach(func() {
		for _, key := range configEnv {
			Expect(os.Unsetenv(key)).To(Succeed())
			DeferCleanup(os.Unsetenv, key)
		}
	})

	It("should use the defaults without environment", func() {
		c, err := game.ConfigFromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(game.DefaultConfig()))
		Expect(c.IdleMovement).To(Equal(5.0))
	})

	It("should read the environment", func() {
		os.Setenv(game.EnvSeed, "42")
		os.Setenv(game.EnvIdleMovement, "7.5")
		os.Setenv(game.EnvTraceFile, "queue.log")
		os.Setenv(game.EnvRecordDB, "run.sqlite3")
		os.Setenv(game.EnvMonitorPort, "8080")
		os.Setenv(game.EnvLogLimit, "10")

		c, err := game.ConfigFromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(game.Config{
			Seed:         42,
			IdleMovement: 7.5,
			TraceFile:    "queue.log",
			RecordDB:     "run.sqlite3",
			MonitorPort:  8080,
			LogLimit:     10,
		}))
	})

	It("should load env files", func() {
		path := writeEnvFile("RCK_SEED=9\nRCK_TRACE_FILE=trace.log\n")

		c, err := game.LoadConfig(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Seed).To(Equal(int64(9)))
		Expect(c.TraceFile).To(Equal("trace.log"))
	})

	It("should prefer the environment over env files", func() {
		os.Setenv(game.EnvSeed, "3")
		path := writeEnvFile("RCK_SEED=9\n")

		c, err := game.LoadConfig(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Seed).To(Equal(int64(3)))
	})

	It("should fail on a missing env file", func() {
		_, err := game.LoadConfig(filepath.Join(GinkgoT().TempDir(), "missing.env"))

		Expect(err).To(HaveOccurred())
	})

	DescribeTable("invalid values",
		func(key, value string) {
			os.Setenv(key, value)

			_, err := game.ConfigFromEnv()

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(key))
		},
		Entry("seed", game.EnvSeed, "abc"),
		Entry("idle movement", game.EnvIdleMovement, "fast"),
		Entry("negative idle movement", game.EnvIdleMovement, "-1"),
		Entry("port", game.EnvMonitorPort, "http"),
		Entry("log limit", game.EnvLogLimit, "many"),
	)
})
