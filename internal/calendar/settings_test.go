package calendar

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings func() Settings
		wantErr  bool
		wantYear bool
	}{
		{
			name:     "defaults",
			settings: func() Settings { return DefaultSettings(2024) },
		},
		{
			name:     "minimum year",
			settings: func() Settings { return DefaultSettings(MinYear) },
		},
		{
			name:     "maximum year",
			settings: func() Settings { return DefaultSettings(MaxYear) },
		},
		{
			name:     "year too early",
			settings: func() Settings { return DefaultSettings(MinYear - 1) },
			wantErr:  true,
			wantYear: true,
		},
		{
			name:     "year too late",
			settings: func() Settings { return DefaultSettings(MaxYear + 1) },
			wantErr:  true,
			wantYear: true,
		},
		{
			name: "unknown epiphany mode",
			settings: func() Settings {
				s := DefaultSettings(2024)
				s.Epiphany = "JAN7"
				return s
			},
			wantErr: true,
		},
		{
			name: "unknown ascension mode",
			settings: func() Settings {
				s := DefaultSettings(2024)
				s.Ascension = "FRIDAY"
				return s
			},
			wantErr: true,
		},
		{
			name: "missing locale",
			settings: func() Settings {
				s := DefaultSettings(2024)
				s.Locale = ""
				return s
			},
			wantErr: true,
		},
		{
			name: "diocese without nation",
			settings: func() Settings {
				s := DefaultSettings(2024)
				s.DiocesanCalendar = "ROMA"
				return s
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings().Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := errors.Is(err, ErrYearOutOfRange); got != tt.wantYear {
				t.Errorf("errors.Is(err, ErrYearOutOfRange) = %v, want %v", got, tt.wantYear)
			}
		})
	}
}

func TestSettings_Validate_ReportsEveryField(t *testing.T) {
	s := Settings{Year: 1900}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, field := range []string{"minimum", "epiphany", "ascension", "corpus_christi", "locale"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error %q does not mention %s", err, field)
		}
	}
}

func TestSettings_CacheKey(t *testing.T) {
	a := Settings{Year: 2024, Epiphany: EpiphanyJan6, Ascension: ObserveThursday, CorpusChristi: ObserveThursday, Locale: "EN", NationalCalendar: "us"}
	b := Settings{Year: 2024, Epiphany: EpiphanyJan6, Ascension: ObserveThursday, CorpusChristi: ObserveThursday, Locale: "en", NationalCalendar: "US"}

	if a.CacheKey() != b.CacheKey() {
		t.Errorf("CacheKey() differs for equivalent settings: %s vs %s", a, b)
	}
	if len(a.CacheKey()) != 64 {
		t.Errorf("CacheKey() length = %d, want 64", len(a.CacheKey()))
	}

	c := b
	c.Ascension = ObserveSunday
	if c.CacheKey() == b.CacheKey() {
		t.Error("CacheKey() equal for different ascension modes")
	}
	c = b
	c.Year = 2025
	if c.CacheKey() == b.CacheKey() {
		t.Error("CacheKey() equal for different years")
	}
}

// ----------------------------------------------------------------------------
// Ranks
// ----------------------------------------------------------------------------

func TestParseRank(t *testing.T) {
	for r := RankWeekday; r <= RankHigherSolemnity; r++ {
		got, err := ParseRank(strings.ToLower(r.String()))
		if err != nil {
			t.Fatalf("ParseRank(%q) error = %v", r, err)
		}
		if got != r {
			t.Errorf("ParseRank(%q) = %s, want %s", r, got, r)
		}
	}

	if _, err := ParseRank("SOLEMN"); err == nil {
		t.Error("ParseRank() expected error for unknown rank")
	}
}

func TestRank_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]Rank{"rank": RankFeastOfTheLord})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"rank":"FEAST_OF_THE_LORD"}` {
		t.Errorf("Marshal() = %s", b)
	}

	var v struct {
		Rank Rank `json:"rank"`
	}
	if err := json.Unmarshal([]byte(`{"rank":"optional_memorial"}`), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v.Rank != RankOptionalMemorial {
		t.Errorf("Unmarshal() rank = %s, want OPTIONAL_MEMORIAL", v.Rank)
	}

	if _, err := json.Marshal(Rank(42)); err == nil {
		t.Error("Marshal() expected error for invalid rank")
	}
}
