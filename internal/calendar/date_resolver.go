package calendar

import (
	"time"
)

// Anchors holds the key dates of one civil year under a given set of
// observance modes. Everything else in the year is resolved relative to
// these dates.
type Anchors struct {
	Year int

	// Christmas cycle
	Epiphany   time.Time
	Baptism    time.Time
	Advent1    time.Time
	Advent4    time.Time
	Christmas  time.Time
	HolyFamily time.Time

	// Easter cycle
	AshWednesday  time.Time
	Lent1         time.Time
	PalmSunday    time.Time
	HolyThursday  time.Time
	Easter        time.Time
	Ascension     time.Time
	Pentecost     time.Time
	Trinity       time.Time
	CorpusChristi time.Time
	SacredHeart   time.Time
	ChristTheKing time.Time

	// OrdinarySunday2 is the first Sunday after the Baptism of the Lord.
	OrdinarySunday2 time.Time
}

// NewAnchors computes the key dates for s.Year under the modes in s.
func NewAnchors(s Settings) Anchors {
	year := s.Year
	a := Anchors{Year: year}

	// ==========================================================================
	// CHRISTMAS CYCLE
	// ==========================================================================
	a.Christmas = Date(year, time.December, 25)
	a.Advent4 = Advent4(year)
	a.Advent1 = Advent1(year)
	a.ChristTheKing = ChristTheKing(year)

	if s.Epiphany == EpiphanySundayJan2_8 {
		a.Epiphany = *FindSundayBetween(year, 1, 2, 1, 8)
		if a.Epiphany.Day() >= 7 {
			// Epiphany on the 7th or 8th: the Baptism moves to the Monday.
			a.Baptism = a.Epiphany.AddDate(0, 0, 1)
		} else {
			a.Baptism = SundayAfter(a.Epiphany)
		}
	} else {
		a.Epiphany = Date(year, time.January, 6)
		a.Baptism = SundayAfter(a.Epiphany)
	}
	a.OrdinarySunday2 = SundayAfter(a.Baptism)

	if hf := FindSundayBetween(year, 12, 26, 12, 31); hf != nil {
		a.HolyFamily = *hf
	} else {
		a.HolyFamily = Date(year, time.December, 30)
	}

	// ==========================================================================
	// EASTER CYCLE
	// ==========================================================================
	a.Easter = Easter(year)
	a.AshWednesday = a.Easter.AddDate(0, 0, OffsetAshWednesday)
	a.Lent1 = a.Easter.AddDate(0, 0, OffsetLent1)
	a.PalmSunday = a.Easter.AddDate(0, 0, OffsetPalmSunday)
	a.HolyThursday = a.Easter.AddDate(0, 0, OffsetHolyThursday)
	a.Pentecost = a.Easter.AddDate(0, 0, OffsetPentecost)
	a.Trinity = a.Easter.AddDate(0, 0, OffsetTrinity)
	a.SacredHeart = a.Easter.AddDate(0, 0, OffsetSacredHeart)

	if s.Ascension == ObserveSunday {
		a.Ascension = a.Easter.AddDate(0, 0, OffsetAscensionSun)
	} else {
		a.Ascension = a.Easter.AddDate(0, 0, OffsetAscension)
	}
	if s.CorpusChristi == ObserveSunday {
		a.CorpusChristi = a.Easter.AddDate(0, 0, OffsetCorpusSunday)
	} else {
		a.CorpusChristi = a.Easter.AddDate(0, 0, OffsetCorpusChristi)
	}

	return a
}

// ResolvedPosition places a date within the liturgical year.
type ResolvedPosition struct {
	Season Season
	// Week is the week of the season; 0 for the days after Ash Wednesday
	// and the Christmas octave before its Sunday.
	Week int
	// PsalterWeek is the week of the four-week psalter, 0 where the
	// Liturgy of the Hours uses proper psalms.
	PsalterWeek int
}

// Resolve converts a date of the anchors' year to its season, week and
// psalter week. Seasons are tested in calendar order; the first match wins.
func (a Anchors) Resolve(date time.Time) ResolvedPosition {
	date = Truncate(date)

	// ============================================================================
	// 1. CHRISTMAS TIME, JANUARY PART (Jan 1 - Baptism of the Lord)
	// ============================================================================
	if !date.After(a.Baptism) {
		start := SundayAfter(Date(a.Year-1, time.December, 25))
		week := DaysBetween(start, date)/7 + 1
		return ResolvedPosition{Season: SeasonChristmas, Week: week, PsalterWeek: psalter(week)}
	}

	// ============================================================================
	// 2. ORDINARY TIME BEFORE LENT
	// ============================================================================
	if date.Before(a.AshWednesday) {
		return a.ordinaryBeforeLent(date)
	}

	// ============================================================================
	// 3. LENT (Ash Wednesday - Wednesday of Holy Week)
	// ============================================================================
	if date.Before(a.HolyThursday) {
		if date.Before(a.Lent1) {
			return ResolvedPosition{Season: SeasonLent, Week: 0, PsalterWeek: 4}
		}
		week := DaysBetween(a.Lent1, date)/7 + 1
		return ResolvedPosition{Season: SeasonLent, Week: week, PsalterWeek: psalter(week)}
	}

	// ============================================================================
	// 4. EASTER TRIDUUM (Holy Thursday - Easter Sunday)
	// ============================================================================
	if !date.After(a.Easter) {
		return ResolvedPosition{Season: SeasonEasterTriduum, Week: 0, PsalterWeek: 0}
	}

	// ============================================================================
	// 5. EASTER TIME (to Pentecost)
	// ============================================================================
	if !date.After(a.Pentecost) {
		week := DaysBetween(a.Easter, date)/7 + 1
		return ResolvedPosition{Season: SeasonEaster, Week: week, PsalterWeek: psalter(week)}
	}

	// ============================================================================
	// 6. ORDINARY TIME AFTER PENTECOST
	// ============================================================================
	if date.Before(a.Advent1) {
		week := 34 - DaysBetween(SundayOnOrBefore(date), a.ChristTheKing)/7
		return ResolvedPosition{Season: SeasonOrdinaryTime, Week: week, PsalterWeek: psalter(week)}
	}

	// ============================================================================
	// 7. ADVENT
	// ============================================================================
	if date.Before(a.Christmas) {
		week := DaysBetween(a.Advent1, date)/7 + 1
		return ResolvedPosition{Season: SeasonAdvent, Week: week, PsalterWeek: week}
	}

	// ============================================================================
	// 8. CHRISTMAS TIME, DECEMBER PART
	// ============================================================================
	start := SundayAfter(a.Christmas)
	if date.Before(start) {
		return ResolvedPosition{Season: SeasonChristmas, Week: 0, PsalterWeek: 0}
	}
	return ResolvedPosition{Season: SeasonChristmas, Week: 1, PsalterWeek: 1}
}

// ordinaryBeforeLent numbers the weeks between the Baptism of the Lord and
// Ash Wednesday. The days after the Baptism belong to week 1; the first
// Sunday after it opens week 2.
func (a Anchors) ordinaryBeforeLent(date time.Time) ResolvedPosition {
	week := 1
	if !date.Before(a.OrdinarySunday2) {
		week = 2 + DaysBetween(a.OrdinarySunday2, date)/7
	}
	return ResolvedPosition{Season: SeasonOrdinaryTime, Week: week, PsalterWeek: psalter(week)}
}

// psalter maps a week of a season onto the four-week psalter.
func psalter(week int) int {
	if week <= 0 {
		return 0
	}
	return (week-1)%4 + 1
}

// InHolyWeekOrEasterOctave reports whether date lies between Palm Sunday and
// the Second Sunday of Easter, both inclusive.
func (a Anchors) InHolyWeekOrEasterOctave(date time.Time) bool {
	end := a.Easter.AddDate(0, 0, OffsetEaster2)
	return !date.Before(a.PalmSunday) && !date.After(end)
}

// InHolyWeek reports whether date lies between Palm Sunday and Holy
// Saturday, both inclusive.
func (a Anchors) InHolyWeek(date time.Time) bool {
	return !date.Before(a.PalmSunday) && date.Before(a.Easter)
}
