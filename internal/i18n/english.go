package i18n

import (
	"fmt"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

type english struct{}

func (english) Locale() string { return "en" }

// Ordinal returns the ordinal form of a number (1st, 2nd, 3rd, 11th, 21st, etc.)
func (english) Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

var englishOrdinalWords = []string{
	"", "First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth",
}

func (e english) OrdinalWord(n int) string {
	if n > 0 && n < len(englishOrdinalWords) {
		return englishOrdinalWords[n]
	}
	return e.Ordinal(n)
}

// DayName returns the day of week name (Sunday, Monday, etc.)
func (english) DayName(d time.Weekday) string {
	days := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	return days[d]
}

func (e english) OrdinarySunday(week int) string {
	return fmt.Sprintf("%s Sunday of Ordinary Time", e.Ordinal(week))
}

var englishSeasons = map[calendar.Season]string{
	calendar.SeasonAdvent:       "Advent",
	calendar.SeasonChristmas:    "Christmas Time",
	calendar.SeasonLent:         "Lent",
	calendar.SeasonEaster:       "Easter",
	calendar.SeasonOrdinaryTime: "Ordinary Time",
}

func (e english) SeasonWeekday(season calendar.Season, week int, day time.Weekday) string {
	return fmt.Sprintf("%s of the %s Week of %s", e.DayName(day), e.Ordinal(week), englishSeasons[season])
}

func (e english) AshWeekday(day time.Weekday) string {
	return fmt.Sprintf("%s after Ash Wednesday", e.DayName(day))
}

func (english) AdventPrivilegedWeekday(dayOfMonth int) string {
	return fmt.Sprintf("Advent Weekday: December %d", dayOfMonth)
}

func (e english) ChristmasOctaveDay(n int) string {
	return fmt.Sprintf("%s Day in the Octave of Christmas", e.OrdinalWord(n))
}

func (e english) ChristmasWeekday(date time.Time, afterEpiphany bool) string {
	if afterEpiphany {
		return fmt.Sprintf("%s after Epiphany", e.DayName(date.Weekday()))
	}
	return fmt.Sprintf("Christmas Weekday: January %d", date.Day())
}

func (english) VigilMass(name string) string {
	return fmt.Sprintf("Vigil Mass for the %s", name)
}

var englishRanks = map[calendar.Rank]string{
	calendar.RankWeekday:          "weekday",
	calendar.RankCommemoration:    "commemoration",
	calendar.RankOptionalMemorial: "optional memorial",
	calendar.RankMemorial:         "memorial",
	calendar.RankFeast:            "feast",
	calendar.RankFeastOfTheLord:   "feast of the Lord",
	calendar.RankSolemnity:        "solemnity",
	calendar.RankHigherSolemnity:  "celebration with precedence over solemnities",
}

func (english) Rank(r calendar.Rank) string {
	return englishRanks[r]
}

func (english) Color(c calendar.Color) string {
	return string(c)
}
