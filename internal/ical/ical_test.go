package ical

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
)

func compute(t *testing.T, s calendar.Settings) *engine.Calendar {
	t.Helper()
	ref, err := data.Default()
	require.NoError(t, err)
	cal, err := engine.New(ref, nil).Compute(s)
	require.NoError(t, err)
	return cal
}

func summaries(c *ics.Calendar) map[string]*ics.VEvent {
	out := make(map[string]*ics.VEvent)
	for _, ev := range c.Events() {
		if p := ev.GetProperty(ics.ComponentPropertySummary); p != nil {
			out[p.Value] = ev
		}
	}
	return out
}

func Test_Write(t *testing.T) {
	cal := compute(t, calendar.DefaultSettings(2024))
	stamp := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cal, Options{Stamp: stamp}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+ProductID)
	assert.Contains(t, out, "X-WR-CALNAME:Liturgical Calendar 2024")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20241225")
	assert.Contains(t, out, "DTSTAMP:20240101T120000Z")

	parsed, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, parsed.Events(), len(cal.Events()))

	byName := summaries(parsed)
	christmas, ok := byName["Christmas"]
	require.True(t, ok, "Christmas missing from feed")

	start, err := christmas.GetAllDayStartAt()
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25", start.Format("2006-01-02"))

	desc := christmas.GetProperty(ics.ComponentPropertyDescription)
	require.NotNil(t, desc)
	assert.Contains(t, desc.Value, "Rank: HIGHER_SOLEMNITY")
	assert.Contains(t, desc.Value, "Season: CHRISTMAS")
}

func Test_Write_SkipVigils(t *testing.T) {
	cal := compute(t, calendar.DefaultSettings(2024))

	vigils := 0
	for _, e := range cal.Events() {
		if e.IsVigilMass {
			vigils++
		}
	}
	require.Positive(t, vigils)

	built := Build(cal, Options{SkipVigils: true, Name: "Test"})
	assert.Len(t, built.Events(), len(cal.Events())-vigils)
}

func Test_UID(t *testing.T) {
	cal := compute(t, calendar.DefaultSettings(2024))
	events := cal.Events()

	seen := make(map[string]string, len(events))
	for _, e := range events {
		id := UID(cal.Settings(), e)
		_, err := uuid.Parse(id)
		require.NoError(t, err, "UID %q", id)
		if prev, dup := seen[id]; dup {
			t.Fatalf("UID %s shared by %s and %s", id, prev, e.Key)
		}
		seen[id] = e.Key
	}

	t.Run("Should not depend on the locale", func(t *testing.T) {
		s := cal.Settings()
		it := s
		it.Locale = "it"
		assert.Equal(t, UID(s, events[0]), UID(it, events[0]))
	})

	t.Run("Should change with the year", func(t *testing.T) {
		s := cal.Settings()
		next := s
		next.Year = 2025
		assert.NotEqual(t, UID(s, events[0]), UID(next, events[0]))
	})
}

func Test_DefaultName(t *testing.T) {
	s := calendar.DefaultSettings(2025)
	assert.Equal(t, "Liturgical Calendar 2025", DefaultName(s))

	s.NationalCalendar = "IT"
	s.DiocesanCalendar = "ROMA"
	assert.Equal(t, "Liturgical Calendar 2025 IT ROMA", DefaultName(s))
}
