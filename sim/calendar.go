package sim

import (
	"fmt"
	"math"
)

// TimePeriod is a calendar unit.
type TimePeriod int

// The calendar units, shortest first.
const (
	PeriodRound TimePeriod = iota
	PeriodMinute
	PeriodTurn
	PeriodHour
	PeriodDay
	PeriodWeek
	PeriodMonth
	PeriodYear
)

var periodLengths = [...]VTimeInSec{
	PeriodRound:  10,
	PeriodMinute: 60,
	PeriodTurn:   60 * 10,
	PeriodHour:   60 * 60,
	PeriodDay:    60 * 60 * 24,
	PeriodWeek:   60 * 60 * 24 * 7,
	PeriodMonth:  60 * 60 * 24 * 30,
	PeriodYear:   60 * 60 * 24 * 30 * 12,
}

// PeriodLength returns the length of the period in simulated seconds.
func PeriodLength(p TimePeriod) VTimeInSec {
	if p < PeriodRound || p > PeriodYear {
		panic(fmt.Sprintf("unknown time period %d", p))
	}

	return periodLengths[p]
}

// DateTime is the master clock broken down into calendar units.
type DateTime struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (d DateTime) String() string {
	return fmt.Sprintf("Y%d M%d D%d %02d:%02d:%02d",
		d.Years, d.Months, d.Days, d.Hours, d.Minutes, d.Seconds)
}

// CalendarOf decomposes a master clock value into calendar units.
func CalendarOf(t VTimeInSec) DateTime {
	rest := float64(t)
	out := DateTime{}

	take := func(p TimePeriod) int {
		length := float64(PeriodLength(p))
		n := int(rest / length)
		rest = math.Mod(rest, length)

		return n
	}

	out.Years = take(PeriodYear)
	out.Months = take(PeriodMonth)
	out.Days = take(PeriodDay)
	out.Hours = take(PeriodHour)
	out.Minutes = take(PeriodMinute)
	out.Seconds = int(math.Abs(rest))

	return out
}

// Crossing counts how many calendar units passed during one advance.
//
// Everything but Rounds is derived from the rounds count by integer
// division, so 59 rounds never count as a turn even if a turn boundary was
// crossed.
type Crossing struct {
	Rounds int
	Turns  int
	Hours  int
	Days   int
	Weeks  int
	Months int
}

func roundsIn(t VTimeInSec) int {
	return int(math.Floor(float64(t / PeriodLength(PeriodRound))))
}

func roundsPer(p TimePeriod) int {
	return int(PeriodLength(p) / PeriodLength(PeriodRound))
}

// CrossingBetween computes the crossing for a clock moving from before to
// after.
func CrossingBetween(before, after VTimeInSec) Crossing {
	rounds := roundsIn(after) - roundsIn(before)

	return Crossing{
		Rounds: rounds,
		Turns:  rounds / roundsPer(PeriodTurn),
		Hours:  rounds / roundsPer(PeriodHour),
		Days:   rounds / roundsPer(PeriodDay),
		Weeks:  rounds / roundsPer(PeriodWeek),
		Months: rounds / roundsPer(PeriodMonth),
	}
}

// Any returns true if at least one round boundary was crossed.
func (c Crossing) Any() bool {
	return c.Rounds > 0
}
