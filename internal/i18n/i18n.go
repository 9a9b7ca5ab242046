// Package i18n selects and fills the text templates of generated
// celebration names: Sundays and weekdays of the seasons, Vigil Masses,
// ordinals, rank and color labels.
//
// The calendar engine decides which template applies; a Localizer only
// renders it.
package i18n

import (
	"strings"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// Localizer renders generated names for one locale. Implementations are
// immutable and safe for concurrent use.
type Localizer interface {
	// Locale returns the canonical locale of the implementation.
	Locale() string

	// Ordinal returns the numeric ordinal form of n ("21st").
	Ordinal(n int) string

	// OrdinalWord returns the spelled-out ordinal of n ("Second"),
	// falling back to Ordinal for large numbers.
	OrdinalWord(n int) string

	// DayName returns the name of the weekday.
	DayName(d time.Weekday) string

	// OrdinarySunday names the Sunday of week in Ordinary Time.
	OrdinarySunday(week int) string

	// SeasonWeekday names a weekday of the given week of a season.
	SeasonWeekday(season calendar.Season, week int, day time.Weekday) string

	// AshWeekday names the days between Ash Wednesday and the First
	// Sunday of Lent.
	AshWeekday(day time.Weekday) string

	// AdventPrivilegedWeekday names the weekdays of December 17-24.
	AdventPrivilegedWeekday(dayOfMonth int) string

	// ChristmasOctaveDay names the n-th day within the Octave of Christmas.
	ChristmasOctaveDay(n int) string

	// ChristmasWeekday names a January weekday of Christmas Time, before
	// or after the Epiphany.
	ChristmasWeekday(date time.Time, afterEpiphany bool) string

	// VigilMass names the Vigil Mass of the given celebration.
	VigilMass(name string) string

	// Rank returns the display label of a rank.
	Rank(r calendar.Rank) string

	// Color returns the display label of a color.
	Color(c calendar.Color) string
}

// For returns the Localizer for locale. Regional variants fall back to
// the language ("en_US" → "en") and unknown languages to English.
func For(locale string) Localizer {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "_-"); i > 0 {
		lang = lang[:i]
	}
	switch lang {
	case "it":
		return italian{}
	default:
		return english{}
	}
}
