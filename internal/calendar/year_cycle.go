package calendar

import "time"

// YearCycle is the lectionary cycle letter of a liturgical year: A, B or C
// for Sundays and solemnities, I or II for weekdays.
type YearCycle string

const (
	CycleNone YearCycle = ""
	CycleA    YearCycle = "A"
	CycleB    YearCycle = "B"
	CycleC    YearCycle = "C"
	CycleI    YearCycle = "I"
	CycleII   YearCycle = "II"
)

// LiturgicalYear returns the year in which the liturgical year containing
// date ends.
//
// The liturgical year begins on the First Sunday of Advent, so a date in
// December after Advent has begun belongs to the following year:
//   - November 15, 2024: 2024
//   - December 1, 2024 (First Sunday of Advent): 2025
func LiturgicalYear(date time.Time) int {
	year := date.Year()
	if !date.Before(Advent1(year)) {
		return year + 1
	}
	return year
}

// SundayCycle determines the three-year Sunday cycle for a date.
//
// Cycle determination, by the year in which the liturgical year ends:
//   - divisible by 3: Year C (2025)
//   - remainder 1: Year A (2023)
//   - remainder 2: Year B (2024)
func SundayCycle(date time.Time) YearCycle {
	switch LiturgicalYear(date) % 3 {
	case 1:
		return CycleA
	case 2:
		return CycleB
	default:
		return CycleC
	}
}

// WeekdayCycle determines the two-year weekday cycle for a date: Year I
// when the liturgical year ends in an odd year, Year II otherwise.
func WeekdayCycle(date time.Time) YearCycle {
	if LiturgicalYear(date)%2 == 1 {
		return CycleI
	}
	return CycleII
}
