package cmd

import (
	"fmt"
	"strconv"

	"github.com/ackslab/rck/sim"
	"github.com/spf13/cobra"
)

var periodNames = []struct {
	period sim.TimePeriod
	name   string
}{
	{sim.PeriodRound, "round"},
	{sim.PeriodMinute, "minute"},
	{sim.PeriodTurn, "turn"},
	{sim.PeriodHour, "hour"},
	{sim.PeriodDay, "day"},
	{sim.PeriodWeek, "week"},
	{sim.PeriodMonth, "month"},
	{sim.PeriodYear, "year"},
}

func newCalendarCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "calendar SECONDS [SINCE]",
		Short: "Convert simulated seconds into calendar units.",
		Long: "`calendar SECONDS` prints the date of a master clock value. " +
			"With SINCE, it also prints the boundaries crossed between the " +
			"two values.",
		Args: cobra.RangeArgs(1, 2),
		RunE: runCalendar,
	}

	c.Flags().Bool("periods", false, "Also list the length of every period")

	return c
}

func parseClock(s string) (sim.VTimeInSec, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}

	t := sim.VTimeInSec(v)
	if !sim.IsValidDuration(t) {
		return 0, fmt.Errorf("%q is not a valid clock value", s)
	}

	return t, nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	after, err := parseClock(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sim.CalendarOf(after))

	if len(args) == 2 {
		before, err := parseClock(args[1])
		if err != nil {
			return err
		}

		if before > after {
			return fmt.Errorf("SINCE %v is later than SECONDS %v", before, after)
		}

		c := sim.CrossingBetween(before, after)
		fmt.Fprintf(out,
			"rounds %d, turns %d, hours %d, days %d, weeks %d, months %d\n",
			c.Rounds, c.Turns, c.Hours, c.Days, c.Weeks, c.Months)
	}

	periods, _ := cmd.Flags().GetBool("periods")
	if periods {
		for _, p := range periodNames {
			fmt.Fprintf(out, "%-6s %.0f\n", p.name, sim.PeriodLength(p.period))
		}
	}

	return nil
}
