package i18n

import (
	"testing"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

func TestEnglishOrdinal(t *testing.T) {
	en := For("en")
	tests := []struct {
		n    int
		want string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{21, "21st"},
		{22, "22nd"},
		{23, "23rd"},
		{34, "34th"},
		{111, "111th"},
	}
	for _, tt := range tests {
		if got := en.Ordinal(tt.n); got != tt.want {
			t.Errorf("Ordinal(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestFor(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "en"},
		{"en_US", "en"},
		{"it", "it"},
		{"IT-it", "it"},
		{"la", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		if got := For(tt.locale).Locale(); got != tt.want {
			t.Errorf("For(%q).Locale() = %s, want %s", tt.locale, got, tt.want)
		}
	}
}

func TestEnglishTemplates(t *testing.T) {
	en := For("en")

	if got, want := en.OrdinarySunday(2), "2nd Sunday of Ordinary Time"; got != want {
		t.Errorf("OrdinarySunday(2) = %s, want %s", got, want)
	}
	if got, want := en.SeasonWeekday(calendar.SeasonLent, 3, time.Friday), "Friday of the 3rd Week of Lent"; got != want {
		t.Errorf("SeasonWeekday = %s, want %s", got, want)
	}
	if got, want := en.ChristmasOctaveDay(5), "Fifth Day in the Octave of Christmas"; got != want {
		t.Errorf("ChristmasOctaveDay(5) = %s, want %s", got, want)
	}
	if got, want := en.ChristmasWeekday(calendar.Date(2024, time.January, 8), true), "Monday after Epiphany"; got != want {
		t.Errorf("ChristmasWeekday = %s, want %s", got, want)
	}
	if got, want := en.VigilMass("Assumption"), "Vigil Mass for the Assumption"; got != want {
		t.Errorf("VigilMass = %s, want %s", got, want)
	}
}

func TestRankLabels(t *testing.T) {
	for _, loc := range []Localizer{For("en"), For("it")} {
		for r := calendar.RankWeekday; r <= calendar.RankHigherSolemnity; r++ {
			if loc.Rank(r) == "" {
				t.Errorf("%s: missing label for %s", loc.Locale(), r)
			}
		}
		for _, c := range calendar.ValidColors() {
			if loc.Color(c) == "" {
				t.Errorf("%s: missing label for color %s", loc.Locale(), c)
			}
		}
	}
}
