package engine

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/i18n"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	ref, err := data.Default()
	require.NoError(t, err)
	return New(ref, nil)
}

func compute(t *testing.T, s calendar.Settings) *Calendar {
	t.Helper()
	cal, err := testEngine(t).Compute(s)
	require.NoError(t, err)
	return cal
}

// newTestRun returns an empty run for exercising single decisions.
func newTestRun(t *testing.T, year int) *run {
	t.Helper()
	ref, err := data.Default()
	require.NoError(t, err)
	s := calendar.DefaultSettings(year)
	names, err := ref.TemporeNames(s.Locale)
	require.NoError(t, err)
	return &run{
		settings: s,
		anchors:  calendar.NewAnchors(s),
		names:    names,
		loc:      i18n.For(s.Locale),
		ref:      ref,
		logger:   slog.New(slog.DiscardHandler),
		index:    NewIndex(),
		rowAt:    make(map[string]int),
	}
}

func find(cal *Calendar, key string) *LiturgicalEvent {
	for _, e := range cal.Events() {
		if e.Key == key {
			return e
		}
	}
	return nil
}

func messagesWith(cal *Calendar, code MessageCode) []Message {
	var out []Message
	for _, m := range cal.Messages() {
		if m.Code == code {
			out = append(out, m)
		}
	}
	return out
}

func date(year int, month time.Month, day int) time.Time {
	return calendar.Date(year, month, day)
}

func Test_Engine_Compute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		settings calendar.Settings
		wantIs   error
	}{
		{
			name:     "Should reject a year below the minimum",
			settings: calendar.Settings{Year: 1969},
			wantIs:   calendar.ErrYearOutOfRange,
		},
		{
			name:     "Should reject a year above the maximum",
			settings: calendar.Settings{Year: 10000},
			wantIs:   calendar.ErrYearOutOfRange,
		},
		{
			name:     "Should reject an unknown national calendar",
			settings: calendar.Settings{Year: 2024, NationalCalendar: "XX"},
			wantIs:   ErrUnknownCalendar,
		},
		{
			name:     "Should reject a diocese of another nation",
			settings: calendar.Settings{Year: 2024, NationalCalendar: "US", DiocesanCalendar: "ROMA"},
			wantIs:   ErrUnknownCalendar,
		},
		{
			name:     "Should reject a locale without Proprium de Tempore",
			settings: calendar.Settings{Year: 2024, Locale: "xx"},
			wantIs:   data.ErrMissingTempore,
		},
	}

	e := testEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := e.Compute(tt.settings)
			require.Error(t, err)
			assert.Nil(t, cal)
			assert.True(t, errors.Is(err, tt.wantIs), "got %v, want %v", err, tt.wantIs)
		})
	}
}

func Test_Engine_Resolve(t *testing.T) {
	e := testEngine(t)

	t.Run("Should apply General Roman Calendar defaults", func(t *testing.T) {
		s, err := e.Resolve(calendar.Settings{Year: 2024})
		require.NoError(t, err)
		assert.Equal(t, calendar.DefaultSettings(2024), s)
	})

	t.Run("Should take national defaults for empty fields", func(t *testing.T) {
		s, err := e.Resolve(calendar.Settings{Year: 2024, NationalCalendar: "us"})
		require.NoError(t, err)
		assert.Equal(t, calendar.EpiphanySundayJan2_8, s.Epiphany)
		assert.Equal(t, calendar.ObserveSunday, s.Ascension)
		assert.Equal(t, "en_US", s.Locale)
		assert.Equal(t, "US", s.NationalCalendar)
	})

	t.Run("Should keep explicit settings over national defaults", func(t *testing.T) {
		s, err := e.Resolve(calendar.Settings{Year: 2024, NationalCalendar: "US", Ascension: calendar.ObserveThursday})
		require.NoError(t, err)
		assert.Equal(t, calendar.ObserveThursday, s.Ascension)
	})
}

func Test_Engine_Compute_Ascension(t *testing.T) {
	t.Run("Should keep Ascension on Thursday, 1 June 2000", func(t *testing.T) {
		cal := compute(t, calendar.DefaultSettings(2000))
		asc := find(cal, "Ascension")
		require.NotNil(t, asc)
		assert.Equal(t, date(2000, time.June, 1), asc.Date)
		assert.Equal(t, time.Thursday, asc.Date.Weekday())
		assert.Equal(t, 39, calendar.DaysBetween(calendar.Easter(2000), asc.Date))
	})

	t.Run("Should replace the Seventh Sunday of Easter when Ascension is on Sunday", func(t *testing.T) {
		s := calendar.DefaultSettings(2000)
		s.Ascension = calendar.ObserveSunday
		cal := compute(t, s)

		asc := find(cal, "Ascension")
		require.NotNil(t, asc)
		assert.Equal(t, date(2000, time.June, 4), asc.Date)
		assert.Nil(t, find(cal, "Easter7"))

		var skipped bool
		for _, m := range messagesWith(cal, CodeSundaySkipped) {
			if m.Event == "Easter7" && m.Other == "Ascension" {
				skipped = true
			}
		}
		assert.True(t, skipped, "expected a note for the replaced Sunday")
	})
}

func Test_Engine_Compute_OneWinnerPerDate(t *testing.T) {
	e := testEngine(t)

	check := func(t *testing.T, s calendar.Settings) {
		cal, err := e.Compute(s)
		require.NoError(t, err)

		winners := make(map[int]string)
		for _, ev := range cal.Events() {
			if ev.IsVigilMass || ev.Rank < calendar.RankFeast {
				continue
			}
			day := calendar.DayKey(ev.Date)
			if prev, ok := winners[day]; ok {
				t.Errorf("%d: %s and %s both win %s", s.Year, prev, ev.Key, calendar.FormatDate(ev.Date))
			}
			winners[day] = ev.Key
		}
	}

	for year := calendar.MinYear; year <= 2100; year++ {
		check(t, calendar.Settings{Year: year})
	}
	for _, year := range []int{1981, 2000, 2011, 2016, 2022, 2024, 2025} {
		check(t, calendar.Settings{Year: year, NationalCalendar: "US"})
		check(t, calendar.Settings{Year: year, NationalCalendar: "IT", DiocesanCalendar: "ROMA"})
	}
}

func Test_Engine_Compute_EveryDayHasACelebration(t *testing.T) {
	for _, s := range []calendar.Settings{
		{Year: 2024},
		{Year: 2025},
		{Year: 2024, NationalCalendar: "US"},
	} {
		cal := compute(t, s)
		for d := date(s.Year, time.January, 1); d.Year() == s.Year; d = d.AddDate(0, 0, 1) {
			assert.NotNil(t, cal.Principal(d), "no celebration on %s", calendar.FormatDate(d))
		}
	}
}

func Test_Engine_Compute_Deterministic(t *testing.T) {
	s := calendar.Settings{Year: 2024, NationalCalendar: "US"}

	first, err := json.Marshal(compute(t, s))
	require.NoError(t, err)
	second, err := json.Marshal(compute(t, s))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func Test_Engine_Compute_Concurrent(t *testing.T) {
	e := testEngine(t)
	years := []int{2019, 2020, 2021, 2022, 2023, 2024, 2025, 2026}

	want := make(map[int][]byte, len(years))
	for _, year := range years {
		cal, err := e.Compute(calendar.Settings{Year: year, NationalCalendar: "IT"})
		require.NoError(t, err)
		b, err := json.Marshal(cal)
		require.NoError(t, err)
		want[year] = b
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got = make(map[int][]byte, len(years))
	)
	for i := 0; i < 4; i++ {
		for _, year := range years {
			wg.Add(1)
			go func(year int) {
				defer wg.Done()
				cal, err := e.Compute(calendar.Settings{Year: year, NationalCalendar: "IT"})
				if err != nil {
					t.Errorf("Compute(%d) error = %v", year, err)
					return
				}
				b, err := json.Marshal(cal)
				if err != nil {
					t.Errorf("Marshal(%d) error = %v", year, err)
					return
				}
				mu.Lock()
				got[year] = b
				mu.Unlock()
			}(year)
		}
	}
	wg.Wait()

	for _, year := range years {
		assert.Equal(t, string(want[year]), string(got[year]), "year %d", year)
	}
}

func Test_Engine_Compute_VigilProperty(t *testing.T) {
	for _, year := range []int{1970, 1989, 2008, 2011, 2022, 2024, 2025, 2038} {
		cal := compute(t, calendar.Settings{Year: year})
		a := calendar.NewAnchors(cal.Settings())

		decided := make(map[string]bool)
		for _, m := range cal.Messages() {
			switch m.Code {
			case CodeVigilSuppressed, CodeVigilUnresolved, CodeVigilOverride, CodeVigilOutOfBounds:
				decided[m.Event] = true
			}
		}

		for _, e := range cal.Events() {
			if e.IsVigilMass || e.Rank < calendar.RankSolemnity {
				continue
			}
			if e.Key == "AllSouls" || e.Key == "AshWednesday" || a.InHolyWeekOrEasterOctave(e.Date) {
				assert.False(t, e.HasVigilMass, "%d: %s must not have a vigil", year, e.Key)
				continue
			}
			if e.HasVigilMass {
				v := find(cal, e.Key+vigilSuffix)
				if assert.NotNil(t, v, "%d: vigil of %s", year, e.Key) {
					assert.True(t, v.IsVigilMass)
					assert.Equal(t, e.Key, v.VigilFor)
					assert.Equal(t, e.Date.AddDate(0, 0, -1), v.Date)
					assert.Equal(t, e.Colors, v.Colors)
					assert.Equal(t, e.YearCycle, v.YearCycle)
				}
				assert.True(t, e.HasVespersI)
				continue
			}
			assert.True(t, decided[e.Key+vigilSuffix] || decided[e.Key],
				"%d: %s has no vigil and no message says why", year, e.Key)
		}
	}
}

func Test_Engine_Compute_2022(t *testing.T) {
	cal := compute(t, calendar.Settings{Year: 2022})

	heart := find(cal, "SacredHeart")
	require.NotNil(t, heart)
	assert.Equal(t, date(2022, time.June, 24), heart.Date)

	njb := find(cal, "NativityJohnBaptist")
	require.NotNil(t, njb)
	assert.Equal(t, date(2022, time.June, 23), njb.Date)
	assert.False(t, njb.HasVespersII)

	var transferred bool
	for _, m := range messagesWith(cal, CodeTransferred) {
		if m.Rule == RuleNativityJohnBaptistSacredHeart2022 {
			transferred = true
			assert.Equal(t, "NativityJohnBaptist", m.Event)
			assert.Equal(t, date(2022, time.June, 24), m.Date)
			assert.Equal(t, date(2022, time.June, 23), m.To)
			assert.Equal(t, 2022, m.Year)
		}
	}
	assert.True(t, transferred, "expected the 2022 transfer rule to fire")

	overrides := messagesWith(cal, CodeVigilOverride)
	require.Len(t, overrides, 1)
	assert.Equal(t, RuleSacredHeartVigil2022, overrides[0].Rule)
	assert.Equal(t, "SacredHeart"+vigilSuffix, overrides[0].Event)
	assert.Equal(t, "NativityJohnBaptist", overrides[0].Other)

	assert.True(t, heart.HasVigilMass)
	v := find(cal, "SacredHeart"+vigilSuffix)
	require.NotNil(t, v)
	assert.Equal(t, date(2022, time.June, 23), v.Date)

	// The named rules are dated: 2023 follows the generic path.
	for _, m := range compute(t, calendar.Settings{Year: 2023}).Messages() {
		assert.NotEqual(t, RuleSacredHeartVigil2022, m.Rule)
		assert.NotEqual(t, RuleNativityJohnBaptistSacredHeart2022, m.Rule)
	}
}

func Test_Engine_Compute_2009ConversionStPaul(t *testing.T) {
	cal := compute(t, calendar.Settings{Year: 2009})

	paul := find(cal, "ConversionStPaul")
	require.NotNil(t, paul)
	assert.Equal(t, date(2009, time.January, 25), paul.Date)
	assert.Equal(t, calendar.RankOptionalMemorial, paul.Rank)

	sunday := cal.Principal(date(2009, time.January, 25))
	require.NotNil(t, sunday)
	assert.Equal(t, "OrdSunday3", sunday.Key)

	var fired bool
	for _, m := range messagesWith(cal, CodeOverride) {
		if m.Rule == RuleConversionStPaul2009 {
			fired = true
			assert.Equal(t, "ConversionStPaul", m.Event)
		}
	}
	assert.True(t, fired)

	// In 2015 the feast also falls on a Sunday and is simply suppressed.
	cal = compute(t, calendar.Settings{Year: 2015})
	assert.Nil(t, find(cal, "ConversionStPaul"))
}

func Test_Engine_Compute_OverrideRules(t *testing.T) {
	tests := []struct {
		name string
		year int
		key  string
		rule string
		want time.Time
	}{
		{
			name: "Should anticipate St. Joseph in Holy Week to the Saturday before Palm Sunday",
			year: 2008, key: "StJoseph", rule: RuleStJosephHolyWeek,
			want: date(2008, time.March, 15),
		},
		{
			name: "Should transfer St. Joseph in Holy Week after the Octave of Easter before 2008",
			year: 1989, key: "StJoseph", rule: RuleStJosephHolyWeek,
			want: date(1989, time.April, 3),
		},
		{
			name: "Should transfer St. Joseph on a Sunday of Lent to Monday",
			year: 2017, key: "StJoseph", rule: RuleStJosephLentSunday,
			want: date(2017, time.March, 20),
		},
		{
			name: "Should transfer the Annunciation in the Octave of Easter",
			year: 2008, key: "Annunciation", rule: RuleAnnunciationHolyWeekOrOctave,
			want: date(2008, time.March, 31),
		},
		{
			name: "Should transfer the Annunciation on Palm Sunday",
			year: 2018, key: "Annunciation", rule: RuleAnnunciationHolyWeekOrOctave,
			want: date(2018, time.April, 9),
		},
		{
			name: "Should transfer the Annunciation on a Sunday of Lent to Monday",
			year: 2012, key: "Annunciation", rule: RuleAnnunciationLentSunday,
			want: date(2012, time.March, 26),
		},
		{
			name: "Should transfer the Immaculate Conception on a Sunday of Advent",
			year: 2024, key: "ImmaculateConception", rule: RuleImmaculateConceptionAdventSunday,
			want: date(2024, time.December, 9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := compute(t, calendar.Settings{Year: tt.year})

			e := find(cal, tt.key)
			require.NotNil(t, e)
			assert.Equal(t, tt.want, e.Date)

			var fired bool
			for _, m := range messagesWith(cal, CodeTransferred) {
				if m.Rule == tt.rule && m.Event == tt.key {
					fired = true
					assert.Equal(t, tt.want, m.To)
				}
			}
			assert.True(t, fired, "rule %s did not fire", tt.rule)
		})
	}
}

func Test_Engine_Compute_Decrees(t *testing.T) {
	t.Run("Should rank St. Mary Magdalene as a feast from 2016", func(t *testing.T) {
		before := find(compute(t, calendar.Settings{Year: 2015}), "StMaryMagdalene")
		require.NotNil(t, before)
		assert.Equal(t, calendar.RankMemorial, before.Rank)

		after := find(compute(t, calendar.Settings{Year: 2024}), "StMaryMagdalene")
		require.NotNil(t, after)
		assert.Equal(t, calendar.RankFeast, after.Rank)
	})

	t.Run("Should create Mary Mother of the Church on the Monday after Pentecost", func(t *testing.T) {
		e := find(compute(t, calendar.Settings{Year: 2024}), "MaryMotherChurch")
		require.NotNil(t, e)
		assert.Equal(t, date(2024, time.May, 20), e.Date)
		assert.Equal(t, calendar.RankMemorial, e.Rank)
		assert.Equal(t, calendar.EventMobile, e.Type)

		assert.Nil(t, find(compute(t, calendar.Settings{Year: 2017}), "MaryMotherChurch"))
	})

	t.Run("Should rename St. Martha from 2021", func(t *testing.T) {
		e := find(compute(t, calendar.Settings{Year: 2021}), "StMartha")
		require.NotNil(t, e)
		assert.Equal(t, "Saints Martha, Mary and Lazarus", e.Name)
	})

	t.Run("Should record St. Irenaeus as Doctor of the Church from 2022", func(t *testing.T) {
		cal := compute(t, calendar.Settings{Year: 2022})
		e := find(cal, "StIrenaeus")
		require.NotNil(t, e)
		assert.Contains(t, e.Name, "doctor of the Church")

		msgs := messagesWith(cal, CodeDoctor)
		require.Len(t, msgs, 1)
		assert.Equal(t, "Saint Irenaeus, bishop and martyr", msgs[0].Before)
	})

	t.Run("Should gate decrees by since_year", func(t *testing.T) {
		assert.Nil(t, find(compute(t, calendar.Settings{Year: 2013}), "StJohnXXIII"))
		assert.NotNil(t, find(compute(t, calendar.Settings{Year: 2014}), "StJohnXXIII"))
	})

	t.Run("Should gate Missal editions by year", func(t *testing.T) {
		assert.Nil(t, find(compute(t, calendar.Settings{Year: 2007}), "StPioPietrelcina"))
		pio := find(compute(t, calendar.Settings{Year: 2024}), "StPioPietrelcina")
		require.NotNil(t, pio)
		assert.Equal(t, "2008", pio.Source)
	})
}

func Test_Engine_Compute_Weekdays(t *testing.T) {
	cal := compute(t, calendar.Settings{Year: 2024})

	tests := []struct {
		key    string
		name   string
		season calendar.Season
		cycle  calendar.YearCycle
		date   time.Time
	}{
		{"ChristmasWeekday0105", "Christmas Weekday: January 5", calendar.SeasonChristmas, calendar.CycleII, date(2024, time.January, 5)},
		{"OrdWeekday0116", "Tuesday of the 2nd Week of Ordinary Time", calendar.SeasonOrdinaryTime, calendar.CycleII, date(2024, time.January, 16)},
		{"LentWeekday0215", "Thursday after Ash Wednesday", calendar.SeasonLent, calendar.CycleII, date(2024, time.February, 15)},
		{"AdventWeekday1218", "Advent Weekday: December 18", calendar.SeasonAdvent, calendar.CycleI, date(2024, time.December, 18)},
		{"ChristmasWeekday1230", "Sixth Day in the Octave of Christmas", calendar.SeasonChristmas, calendar.CycleI, date(2024, time.December, 30)},
	}
	for _, tt := range tests {
		e := find(cal, tt.key)
		if !assert.NotNil(t, e, tt.key) {
			continue
		}
		assert.Equal(t, tt.name, e.Name)
		assert.Equal(t, tt.season, e.Season)
		assert.Equal(t, tt.date, e.Date)
		assert.Equal(t, calendar.RankWeekday, e.Rank)
		assert.Equal(t, tt.cycle, e.YearCycle, tt.key)
	}

	sat := find(cal, "SatMemBVM0120")
	require.NotNil(t, sat)
	assert.Equal(t, calendar.RankOptionalMemorial, sat.Rank)
}

func Test_Engine_Compute_Regional(t *testing.T) {
	t.Run("Should apply United States defaults and calendar", func(t *testing.T) {
		cal := compute(t, calendar.Settings{Year: 2024, NationalCalendar: "US"})

		epiphany := find(cal, "Epiphany")
		require.NotNil(t, epiphany)
		assert.Equal(t, date(2024, time.January, 7), epiphany.Date)

		thanks := find(cal, "ThanksgivingDay")
		require.NotNil(t, thanks)
		assert.Equal(t, date(2024, time.November, 28), thanks.Date)
		assert.Equal(t, OriginNational, thanks.Origin)
		assert.Equal(t, "US", thanks.Source)

		guadalupe := find(cal, "LadyGuadalupe")
		require.NotNil(t, guadalupe)
		assert.Equal(t, calendar.RankFeast, guadalupe.Rank)

		claver := find(cal, "StPeterClaver")
		require.NotNil(t, claver)
		assert.Equal(t, calendar.RankMemorial, claver.Rank)
		assert.Equal(t, OriginNational, claver.Origin)
	})

	t.Run("Should raise the patrons of Europe and Rome", func(t *testing.T) {
		cal := compute(t, calendar.Settings{Year: 2025, NationalCalendar: "IT", DiocesanCalendar: "ROMA"})

		benedict := find(cal, "StBenedict")
		require.NotNil(t, benedict)
		assert.Equal(t, calendar.RankFeast, benedict.Rank)
		assert.Contains(t, benedict.Name, "Patron of Europe")
		assert.Equal(t, OriginWider, benedict.Origin)

		neri := find(cal, "StPhilipNeri")
		require.NotNil(t, neri)
		assert.Equal(t, calendar.RankFeast, neri.Rank)
		assert.Contains(t, neri.Name, "Patron of Rome")
		assert.Equal(t, OriginDiocesan, neri.Origin)
		assert.Equal(t, "ROMA", neri.Source)

		// A feast removes the plain weekday it used to share the day with.
		for _, e := range cal.On(date(2025, time.May, 26)) {
			assert.NotEqual(t, calendar.RankWeekday, e.Rank, e.Key)
		}

		asc := find(cal, "Ascension")
		require.NotNil(t, asc)
		assert.Equal(t, time.Sunday, asc.Date.Weekday())
	})

	t.Run("Should explain a patron missing from the calendar", func(t *testing.T) {
		// 26 May 2024 is Trinity Sunday.
		cal := compute(t, calendar.Settings{Year: 2024, NationalCalendar: "IT", DiocesanCalendar: "ROMA"})
		assert.Nil(t, find(cal, "StPhilipNeri"))

		var explained bool
		for _, m := range messagesWith(cal, CodeMissingTarget) {
			if m.Event == "StPhilipNeri" {
				explained = true
				assert.Equal(t, "Trinity", m.Other)
				assert.Equal(t, "ROMA", m.Source)
			}
		}
		assert.True(t, explained)
	})
}

func Test_Engine_Compute_DiocesanMoveEvent(t *testing.T) {
	base, err := data.Default()
	require.NoError(t, err)

	ref, err := base.WithRegion(data.RegionalCalendar{
		ID:     "TESTDIOCESE",
		Name:   "Test Diocese",
		Kind:   data.RegionDiocesan,
		Parent: "US",
		Directives: []data.Directive{
			{
				ID:        "MoveLukeToChristmas",
				Action:    data.ActionMoveEvent,
				SinceYear: 2000,
				Event:     data.EventSpec{Key: "StLukeEvangelist", Month: 12, Day: 25},
			},
			{
				ID:        "MoveScholastica",
				Action:    data.ActionMoveEvent,
				SinceYear: 2000,
				Event:     data.EventSpec{Key: "StScholastica", Month: 2, Day: 9},
			},
		},
	})
	require.NoError(t, err)

	cal, err := New(ref, nil).Compute(calendar.Settings{Year: 2024, NationalCalendar: "US", DiocesanCalendar: "testdiocese"})
	require.NoError(t, err)

	t.Run("Should suppress a move onto a solemnity with a message", func(t *testing.T) {
		assert.Nil(t, find(cal, "StLukeEvangelist"))

		msgs := messagesWith(cal, CodeMoveSuppressed)
		require.Len(t, msgs, 1)
		assert.Equal(t, "StLukeEvangelist", msgs[0].Event)
		assert.Equal(t, "Christmas", msgs[0].Other)
		assert.Equal(t, date(2024, time.October, 18), msgs[0].Date)
		assert.Equal(t, date(2024, time.December, 25), msgs[0].To)
		assert.Equal(t, "TESTDIOCESE", msgs[0].Source)

		weekday := cal.Principal(date(2024, time.October, 18))
		require.NotNil(t, weekday)
		assert.Equal(t, "OrdWeekday1018", weekday.Key)
	})

	t.Run("Should move onto a free date and tag the origin", func(t *testing.T) {
		e := find(cal, "StScholastica")
		require.NotNil(t, e)
		assert.Equal(t, date(2024, time.February, 9), e.Date)
		assert.Equal(t, OriginDiocesan, e.Origin)
		assert.Len(t, messagesWith(cal, CodeMoved), 1)
	})
}

func Test_Engine_Compute_RegionalSolemnityOnSunday(t *testing.T) {
	base, err := data.Default()
	require.NoError(t, err)

	sunday := date(2024, time.July, 7)
	ref, err := base.WithRegion(data.RegionalCalendar{
		ID:     "TESTDIOCESE",
		Name:   "Test Diocese",
		Kind:   data.RegionDiocesan,
		Parent: "US",
		Directives: []data.Directive{
			{
				ID:        "PrincipalPatron",
				Action:    data.ActionCreateNew,
				SinceYear: 2000,
				Event: data.EventSpec{
					Key: "PrincipalPatron", Name: "Principal Patron", Month: 7, Day: 7,
					Rank: calendar.RankSolemnity, Colors: white,
				},
			},
			{
				ID:        "EqualToSunday",
				Action:    data.ActionCreateNew,
				SinceYear: 2000,
				Event: data.EventSpec{
					Key: "EqualToSunday", Name: "Equal To Sunday", Month: 7, Day: 14,
					Rank: calendar.RankFeastOfTheLord, Colors: white,
				},
			},
		},
	})
	require.NoError(t, err)

	cal, err := New(ref, nil).Compute(calendar.Settings{Year: 2024, NationalCalendar: "US", DiocesanCalendar: "TESTDIOCESE"})
	require.NoError(t, err)

	t.Run("Should let a solemnity outrank a Sunday of Ordinary Time", func(t *testing.T) {
		principal := cal.Principal(sunday)
		require.NotNil(t, principal)
		assert.Equal(t, "PrincipalPatron", principal.Key)
		assert.Equal(t, OriginDiocesan, principal.Origin)
		assert.Nil(t, find(cal, "OrdSunday14"))

		displaced := false
		for _, m := range messagesWith(cal, CodeDisplaced) {
			if m.Event == "OrdSunday14" && m.Other == "PrincipalPatron" {
				displaced = true
			}
		}
		assert.True(t, displaced)
		for _, m := range messagesWith(cal, CodeArbitration) {
			assert.NotEqual(t, "PrincipalPatron", m.Event)
		}
	})

	t.Run("Should keep arbitration for equal ranks", func(t *testing.T) {
		principal := cal.Principal(date(2024, time.July, 14))
		require.NotNil(t, principal)
		assert.Equal(t, "OrdSunday15", principal.Key)
		assert.Nil(t, find(cal, "EqualToSunday"))

		var msgs []Message
		for _, m := range messagesWith(cal, CodeArbitration) {
			if m.Event == "EqualToSunday" {
				msgs = append(msgs, m)
			}
		}
		require.Len(t, msgs, 1)
		assert.Equal(t, "OrdSunday15", msgs[0].Other)
	})
}

func Test_Calendar_Output(t *testing.T) {
	cal := compute(t, calendar.Settings{Year: 2024})

	t.Run("Should sort events by date then rank", func(t *testing.T) {
		events := cal.Events()
		require.NotEmpty(t, events)
		for i := 1; i < len(events); i++ {
			a, b := events[i-1], events[i]
			if a.Date.Equal(b.Date) {
				assert.LessOrEqual(t, a.Rank, b.Rank, "%s before %s", a.Key, b.Key)
			} else {
				assert.True(t, a.Date.Before(b.Date), "%s before %s", a.Key, b.Key)
			}
		}
	})

	t.Run("Should return copies", func(t *testing.T) {
		e := cal.Events()[0]
		e.Name = "changed"
		assert.NotEqual(t, "changed", cal.Events()[0].Name)
	})

	t.Run("Should split solemnities from feasts and memorials", func(t *testing.T) {
		for _, e := range cal.Solemnities() {
			assert.GreaterOrEqual(t, e.Rank, calendar.RankFeastOfTheLord)
			assert.False(t, e.IsVigilMass)
		}
		for _, e := range cal.FeastsAndMemorials() {
			assert.GreaterOrEqual(t, e.Rank, calendar.RankOptionalMemorial)
			assert.LessOrEqual(t, e.Rank, calendar.RankFeast)
		}
		assert.NotEmpty(t, cal.Solemnities())
		assert.NotEmpty(t, cal.FeastsAndMemorials())
	})

	t.Run("Should report key dates", func(t *testing.T) {
		kd := cal.KeyDates()
		assert.Equal(t, date(2024, time.March, 31), kd.Easter)
		assert.Equal(t, date(2024, time.February, 14), kd.AshWednesday)
		assert.Equal(t, date(2024, time.May, 19), kd.Pentecost)
		assert.Equal(t, date(2024, time.December, 1), kd.Advent1)
	})

	t.Run("Should derive season and cycle", func(t *testing.T) {
		christmas := cal.Principal(date(2024, time.December, 25))
		require.NotNil(t, christmas)
		assert.Equal(t, "Christmas", christmas.Key)
		assert.Equal(t, calendar.SeasonChristmas, christmas.Season)
		assert.Equal(t, calendar.CycleC, christmas.YearCycle)

		sunday := find(cal, "OrdSunday2")
		require.NotNil(t, sunday)
		assert.Equal(t, date(2024, time.January, 14), sunday.Date)
		assert.Equal(t, calendar.CycleB, sunday.YearCycle)
		assert.Equal(t, 2, sunday.PsalterWeek)
	})

	t.Run("Should round-trip through JSON", func(t *testing.T) {
		b, err := json.Marshal(cal)
		require.NoError(t, err)

		var restored Calendar
		require.NoError(t, json.Unmarshal(b, &restored))
		assert.Equal(t, cal.Settings(), restored.Settings())
		assert.Equal(t, cal.KeyDates(), restored.KeyDates())
		assert.Equal(t, len(cal.Events()), len(restored.Events()))
		assert.Equal(t, len(cal.Messages()), len(restored.Messages()))

		again, err := json.Marshal(&restored)
		require.NoError(t, err)
		assert.JSONEq(t, string(b), string(again))
	})
}
