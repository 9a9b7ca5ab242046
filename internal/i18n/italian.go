package i18n

import (
	"fmt"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

type italian struct{}

func (italian) Locale() string { return "it" }

func (italian) Ordinal(n int) string {
	return fmt.Sprintf("%dª", n)
}

var italianOrdinalWords = []string{
	"", "Primo", "Secondo", "Terzo", "Quarto", "Quinto", "Sesto", "Settimo", "Ottavo",
}

func (i italian) OrdinalWord(n int) string {
	if n > 0 && n < len(italianOrdinalWords) {
		return italianOrdinalWords[n]
	}
	return i.Ordinal(n)
}

func (italian) DayName(d time.Weekday) string {
	days := []string{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"}
	return days[d]
}

func (i italian) OrdinarySunday(week int) string {
	return fmt.Sprintf("%s Domenica del Tempo Ordinario", i.Ordinal(week))
}

var italianSeasons = map[calendar.Season]string{
	calendar.SeasonAdvent:       "di Avvento",
	calendar.SeasonChristmas:    "del Tempo di Natale",
	calendar.SeasonLent:         "di Quaresima",
	calendar.SeasonEaster:       "di Pasqua",
	calendar.SeasonOrdinaryTime: "del Tempo Ordinario",
}

func (i italian) SeasonWeekday(season calendar.Season, week int, day time.Weekday) string {
	return fmt.Sprintf("%s della %s settimana %s", i.DayName(day), i.Ordinal(week), italianSeasons[season])
}

func (i italian) AshWeekday(day time.Weekday) string {
	return fmt.Sprintf("%s dopo le Ceneri", i.DayName(day))
}

func (italian) AdventPrivilegedWeekday(dayOfMonth int) string {
	return fmt.Sprintf("Feria propria del %d dicembre", dayOfMonth)
}

func (i italian) ChristmasOctaveDay(n int) string {
	return fmt.Sprintf("%s giorno fra l'Ottava di Natale", i.OrdinalWord(n))
}

func (i italian) ChristmasWeekday(date time.Time, afterEpiphany bool) string {
	if afterEpiphany {
		return fmt.Sprintf("%s dopo l'Epifania", i.DayName(date.Weekday()))
	}
	return fmt.Sprintf("Feria del Tempo di Natale: %d gennaio", date.Day())
}

func (italian) VigilMass(name string) string {
	return fmt.Sprintf("Messa nella Vigilia: %s", name)
}

var italianRanks = map[calendar.Rank]string{
	calendar.RankWeekday:          "feria",
	calendar.RankCommemoration:    "commemorazione",
	calendar.RankOptionalMemorial: "memoria facoltativa",
	calendar.RankMemorial:         "memoria obbligatoria",
	calendar.RankFeast:            "festa",
	calendar.RankFeastOfTheLord:   "festa del Signore",
	calendar.RankSolemnity:        "solennità",
	calendar.RankHigherSolemnity:  "celebrazione con precedenza sulle solennità",
}

func (italian) Rank(r calendar.Rank) string {
	return italianRanks[r]
}

var italianColors = map[calendar.Color]string{
	calendar.ColorWhite:  "bianco",
	calendar.ColorRed:    "rosso",
	calendar.ColorGreen:  "verde",
	calendar.ColorPurple: "viola",
	calendar.ColorRose:   "rosaceo",
}

func (italian) Color(c calendar.Color) string {
	return italianColors[c]
}
