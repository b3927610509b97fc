package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/ackslab/rck/datarecording"
	"github.com/ackslab/rck/game"
	"github.com/ackslab/rck/monitoring"
	"github.com/ackslab/rck/sim"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

func newSkirmishCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "skirmish",
		Short: "Play a skirmish with the autopilot.",
		Long: "`skirmish` sets a party of three against goblins and trolls " +
			"and lets the autopilot play until one side is down or the " +
			"time limit is reached.",
		Args: cobra.NoArgs,
		RunE: runSkirmish,
	}

	defaults := game.DefaultSkirmish()

	c.Flags().Int64("seed", 0, "Seed of the dice, 0 picks one from the clock")
	c.Flags().Float64("idle-movement", 0, "Movement waited for by idle entities")
	c.Flags().String("trace", "", "Append a dump of the event queue to this file")
	c.Flags().Bool("log-events", false, "Print every dispatched turn to stderr")
	c.Flags().String("record", "", "Record the run into this SQLite file (without extension)")
	c.Flags().Bool("monitor", false, "Serve the game state over HTTP")
	c.Flags().Int("port", 0, "Port of the monitor, 0 picks a random one")
	c.Flags().Bool("open", false, "Open the monitor in the browser")
	c.Flags().Bool("hold", false, "Keep the monitor running after the game until interrupted")
	c.Flags().Duration("step-delay", 0, "Wall-clock pause after every advance")
	c.Flags().Float64("limit", float64(sim.PeriodLength(sim.PeriodHour)),
		"Simulated seconds before the skirmish times out")
	c.Flags().Int("width", defaults.Width, "Width of the map")
	c.Flags().Int("height", defaults.Height, "Height of the map")
	c.Flags().Int("level", defaults.Level, "Level of the party")
	c.Flags().Int("goblins", defaults.Goblins, "Number of goblins")
	c.Flags().Int("trolls", defaults.Trolls, "Number of trolls")
	c.Flags().Bool("quiet", false, "Do not print the action log")

	return c
}

func configFromFlags(cmd *cobra.Command) (game.Config, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return config, err
	}

	flags := cmd.Flags()

	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}

	if flags.Changed("idle-movement") {
		m, _ := flags.GetFloat64("idle-movement")
		if m <= 0 {
			return config, fmt.Errorf("idle movement must be positive, got %v", m)
		}
		config.IdleMovement = m
	}

	if flags.Changed("trace") {
		config.TraceFile, _ = flags.GetString("trace")
	}

	if flags.Changed("record") {
		config.RecordDB, _ = flags.GetString("record")
	}

	if flags.Changed("port") {
		config.MonitorPort, _ = flags.GetInt("port")
	}

	return config, nil
}

func optionsFromFlags(cmd *cobra.Command) (game.SkirmishOptions, error) {
	o := game.DefaultSkirmish()
	flags := cmd.Flags()

	o.Width, _ = flags.GetInt("width")
	o.Height, _ = flags.GetInt("height")
	o.Level, _ = flags.GetInt("level")
	o.Goblins, _ = flags.GetInt("goblins")
	o.Trolls, _ = flags.GetInt("trolls")

	if o.Width < 4 || o.Height < 3 {
		return o, fmt.Errorf("map %dx%d is too small", o.Width, o.Height)
	}

	if o.Level < 1 {
		return o, fmt.Errorf("level must be at least 1, got %d", o.Level)
	}

	if o.Goblins < 0 || o.Trolls < 0 || o.Goblins+o.Trolls == 0 {
		return o, fmt.Errorf("need at least one monster")
	}

	return o, nil
}

func runSkirmish(cmd *cobra.Command, _ []string) error {
	config, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	options, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	limitSec, _ := flags.GetFloat64("limit")
	limit := sim.VTimeInSec(limitSec)
	if !sim.IsValidDuration(limit) || limit == 0 {
		return fmt.Errorf("invalid time limit %v", limitSec)
	}

	ctx := game.NewContext(config)
	config = ctx.Config()
	scheduler := ctx.Scheduler()

	if config.TraceFile != "" {
		dumper, err := sim.NewQueueDumpFile(config.TraceFile, ctx.Registry())
		if err != nil {
			return err
		}
		defer dumper.Close()

		scheduler.AcceptHook(dumper)
	}

	if logEvents, _ := flags.GetBool("log-events"); logEvents {
		scheduler.AcceptHook(sim.NewEventLogger(
			log.New(cmd.ErrOrStderr(), "", 0), ctx.Registry()))
	}

	var execRecorder *datarecording.ExecRecorder
	if config.RecordDB != "" {
		recorder, err := datarecording.New(config.RecordDB)
		if err != nil {
			return err
		}
		defer recorder.Close()

		execRecorder = datarecording.NewExecRecorder(recorder)
		execRecorder.Start()
		execRecorder.Note("Seed", strconv.FormatInt(config.Seed, 10))

		simRecorder := datarecording.NewSimRecorder(
			recorder, execRecorder.RunID(), ctx.Registry(), scheduler)
		scheduler.AcceptHook(simRecorder)
		ctx.Log().Subscribe(simRecorder.RecordLine)
	}

	monitorOn, _ := flags.GetBool("monitor")
	var monitor *monitoring.Monitor
	if monitorOn || config.MonitorPort != 0 {
		monitor = monitoring.NewMonitor(ctx.Registry()).
			WithPortNumber(config.MonitorPort)
		scheduler.AcceptHook(monitor)
		ctx.Log().Subscribe(monitor.RecordLine)

		url, err := monitor.StartServer()
		if err != nil {
			return err
		}

		if open, _ := flags.GetBool("open"); open {
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open the browser: %s\n", err)
			}
		}

		bar := monitor.TrackClock("Skirmish", limit)
		defer monitor.CompleteProgressBar(bar)
	}

	if delay, _ := flags.GetDuration("step-delay"); delay > 0 {
		scheduler.AcceptHook(sim.HookFunc(func(hookCtx sim.HookCtx) {
			if hookCtx.Pos == sim.HookPosAfterAdvance {
				time.Sleep(delay)
			}
		}))
	}

	game.SetUpSkirmish(ctx, options)
	outcome := game.RunSkirmish(ctx, game.NewAutopilot(ctx), limit)

	quiet, _ := flags.GetBool("quiet")
	report(cmd.OutOrStdout(), ctx, outcome, quiet)

	if execRecorder != nil {
		execRecorder.Note("Outcome", outcome.String())
		execRecorder.End()
	}

	if hold, _ := flags.GetBool("hold"); hold && monitor != nil {
		fmt.Fprintln(os.Stderr, "Game over, press Ctrl-C to stop the monitor.")

		interrupted := make(chan os.Signal, 1)
		signal.Notify(interrupted, os.Interrupt)
		<-interrupted
	}

	return nil
}

func report(out io.Writer, ctx *game.Context, outcome game.Outcome, quiet bool) {
	if !quiet {
		for _, line := range ctx.Log().Lines() {
			fmt.Fprintln(out, line)
		}
	}

	scheduler := ctx.Scheduler()
	fmt.Fprintf(out, "Outcome: %s after %.2f s (%s), %d attacks, seed %d\n",
		outcome, scheduler.Now(), scheduler.Calendar(),
		ctx.Resolver().Attacks(), ctx.Config().Seed)
}
