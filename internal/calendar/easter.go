// Package calendar provides the date arithmetic and value types of the
// liturgical calendar: Easter, moveable-feast offsets, seasons, cycles and
// the resolved calendar settings.
package calendar

import (
	"time"
)

// Day offsets from Easter Sunday. Every moveable celebration of the
// Proprium de Tempore is one of these constants away from Easter.
const (
	OffsetAshWednesday  = -46
	OffsetLent1         = -42
	OffsetPalmSunday    = -7
	OffsetHolyThursday  = -3
	OffsetGoodFriday    = -2
	OffsetHolySaturday  = -1
	OffsetEaster2       = 7
	OffsetAscension     = 39
	OffsetAscensionSun  = 42
	OffsetPentecost     = 49
	OffsetTrinity       = 56
	OffsetCorpusChristi = 60
	OffsetCorpusSunday  = 63
	OffsetSacredHeart   = 68
	OffsetImmHeart      = 69
)

// Easter calculates the date of Easter Sunday for a given year using the
// Meeus/Jones/Butcher algorithm for the Gregorian calendar.
//
// The result is always a Sunday between March 22 and April 25.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return Date(year, time.Month(month), day)
}

// Offset returns the date that lies days after (or before, if negative)
// Easter Sunday of the given year.
func Offset(year, days int) time.Time {
	return Easter(year).AddDate(0, 0, days)
}

// Advent1 calculates the First Sunday of Advent for a given year.
//
// The Fourth Sunday of Advent is the last Sunday before Christmas (December
// 18-24); the First Sunday is three weeks earlier, so it always falls
// between November 27 and December 3.
func Advent1(year int) time.Time {
	return Advent4(year).AddDate(0, 0, -21)
}

// Advent4 returns the Sunday immediately preceding Christmas Day.
func Advent4(year int) time.Time {
	christmas := Date(year, time.December, 25)
	back := int(christmas.Weekday())
	if back == 0 {
		back = 7
	}
	return christmas.AddDate(0, 0, -back)
}

// AshWednesday calculates Ash Wednesday for a given year.
func AshWednesday(year int) time.Time {
	return Offset(year, OffsetAshWednesday)
}

// Pentecost calculates Pentecost Sunday for a given year.
func Pentecost(year int) time.Time {
	return Offset(year, OffsetPentecost)
}

// ChristTheKing returns the last Sunday of Ordinary Time.
func ChristTheKing(year int) time.Time {
	return Advent1(year).AddDate(0, 0, -7)
}
