// Package ical exports a computed calendar as an iCalendar feed: one
// all-day VEVENT per celebration.
package ical

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
)

// ProductID is the PRODID of every exported feed.
const ProductID = "-//liturgical-calendar//EN"

// namespace seeds the name-based event UIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/zapponejosh/liturgical-calendar"))

// Options tune the export.
type Options struct {
	// Name is the calendar display name. Defaults to a name built from
	// the settings.
	Name string

	// Stamp is written as DTSTAMP on every event. Defaults to now.
	Stamp time.Time

	// SkipVigils leaves Vigil Masses out of the feed.
	SkipVigils bool
}

// Build converts cal into an iCalendar object.
func Build(cal *engine.Calendar, opts Options) *ics.Calendar {
	s := cal.Settings()

	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	name := opts.Name
	if name == "" {
		name = DefaultName(s)
	}

	out := ics.NewCalendar()
	out.SetMethod(ics.MethodPublish)
	out.SetProductId(ProductID)
	out.SetXWRCalName(name)

	for _, e := range cal.Events() {
		if opts.SkipVigils && e.IsVigilMass {
			continue
		}
		ev := out.AddEvent(UID(s, e))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(e.Date)
		ev.SetAllDayEndAt(e.Date.AddDate(0, 0, 1))
		ev.SetSummary(e.Name)
		ev.SetDescription(describe(e))
		ev.SetProperty(ics.ComponentPropertyCategories, e.Rank.String())
		ev.SetProperty(ics.ComponentPropertyTransp, "TRANSPARENT")
	}
	return out
}

// Write serializes cal to w.
func Write(w io.Writer, cal *engine.Calendar, opts Options) error {
	if err := Build(cal, opts).SerializeTo(w); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}

// UID returns the stable identifier of e within the calendars computed
// for s. It does not depend on the locale.
func UID(s calendar.Settings, e *engine.LiturgicalEvent) string {
	name := fmt.Sprintf("%d/%s/%s/%s",
		s.Year,
		strings.ToUpper(s.NationalCalendar),
		strings.ToUpper(s.DiocesanCalendar),
		e.Key,
	)
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// DefaultName names the feed after its year and regional calendars.
func DefaultName(s calendar.Settings) string {
	parts := []string{"Liturgical Calendar", fmt.Sprint(s.Year)}
	if s.NationalCalendar != "" {
		parts = append(parts, s.NationalCalendar)
	}
	if s.DiocesanCalendar != "" {
		parts = append(parts, s.DiocesanCalendar)
	}
	return strings.Join(parts, " ")
}

func describe(e *engine.LiturgicalEvent) string {
	rank := e.Rank.String()
	if e.DisplayRank != "" {
		rank = e.DisplayRank
	}
	lines := []string{"Rank: " + rank}

	if len(e.Colors) > 0 {
		colors := make([]string, len(e.Colors))
		for i, c := range e.Colors {
			colors[i] = string(c)
		}
		lines = append(lines, "Color: "+strings.Join(colors, ", "))
	}
	if e.Season != "" {
		lines = append(lines, "Season: "+string(e.Season))
	}
	if e.PsalterWeek > 0 {
		lines = append(lines, fmt.Sprintf("Psalter week: %d", e.PsalterWeek))
	}
	if e.YearCycle != "" {
		lines = append(lines, "Cycle: "+string(e.YearCycle))
	}
	if e.IsVigilMass {
		lines = append(lines, "Vigil Mass")
	}
	return strings.Join(lines, "\n")
}
