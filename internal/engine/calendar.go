package engine

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// finalize derives season, psalter week and year cycle. Vigil Masses
// take them from the celebration they anticipate.
func (r *run) finalize() {
	events := r.index.Events()
	for _, e := range events {
		if e.IsVigilMass {
			continue
		}
		pos := r.anchors.Resolve(e.Date)
		e.Season = pos.Season
		e.PsalterWeek = pos.PsalterWeek
		switch {
		case e.Rank >= calendar.RankFeastOfTheLord:
			e.YearCycle = calendar.SundayCycle(e.Date)
		case e.Rank == calendar.RankWeekday:
			e.YearCycle = calendar.WeekdayCycle(e.Date)
		}
	}
	for _, e := range events {
		if !e.IsVigilMass {
			continue
		}
		if parent, ok := r.index.Get(e.VigilFor); ok {
			e.Season = parent.Season
			e.PsalterWeek = parent.PsalterWeek
			e.YearCycle = parent.YearCycle
		}
	}
}

// KeyDates summarizes the anchors of a computed year.
type KeyDates struct {
	Easter       time.Time `json:"easter"`
	AshWednesday time.Time `json:"ash_wednesday"`
	Pentecost    time.Time `json:"pentecost"`
	Advent1      time.Time `json:"advent1"`
}

// Calendar is the finalized, read-only result of one computation.
type Calendar struct {
	settings calendar.Settings
	keyDates KeyDates
	events   []*LiturgicalEvent
	messages []Message
}

func newCalendar(r *run) *Calendar {
	return &Calendar{
		settings: r.settings,
		keyDates: KeyDates{
			Easter:       r.anchors.Easter,
			AshWednesday: r.anchors.AshWednesday,
			Pentecost:    r.anchors.Pentecost,
			Advent1:      r.anchors.Advent1,
		},
		events:   r.index.SortForOutput(),
		messages: slices.Clone(r.messages),
	}
}

// Settings returns the resolved settings the calendar was computed with.
func (c *Calendar) Settings() calendar.Settings {
	return c.settings
}

// KeyDates returns Easter, Ash Wednesday, Pentecost and the First Sunday
// of Advent.
func (c *Calendar) KeyDates() KeyDates {
	return c.keyDates
}

// Events returns copies of every event, sorted by date then rank.
func (c *Calendar) Events() []*LiturgicalEvent {
	return c.filter(func(*LiturgicalEvent) bool { return true })
}

// Solemnities returns the Sundays, solemnities and feasts of the Lord.
func (c *Calendar) Solemnities() []*LiturgicalEvent {
	return c.filter(func(e *LiturgicalEvent) bool {
		return !e.IsVigilMass && e.Rank >= calendar.RankFeastOfTheLord
	})
}

// FeastsAndMemorials returns the feasts, memorials and optional
// memorials.
func (c *Calendar) FeastsAndMemorials() []*LiturgicalEvent {
	return c.filter(func(e *LiturgicalEvent) bool {
		return e.Rank >= calendar.RankOptionalMemorial && e.Rank <= calendar.RankFeast
	})
}

// On returns the events of one date.
func (c *Calendar) On(date time.Time) []*LiturgicalEvent {
	return c.filter(func(e *LiturgicalEvent) bool {
		return calendar.SameDay(e.Date, date)
	})
}

// Principal returns the celebration that takes precedence on date: the
// highest-ranked event that is not a Vigil Mass, or nil.
func (c *Calendar) Principal(date time.Time) *LiturgicalEvent {
	var best *LiturgicalEvent
	for _, e := range c.events {
		if e.IsVigilMass || !calendar.SameDay(e.Date, date) {
			continue
		}
		if best == nil || e.Rank > best.Rank {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	return best.Clone()
}

// Messages returns the audit trail in the order the decisions were taken.
func (c *Calendar) Messages() []Message {
	return slices.Clone(c.messages)
}

func (c *Calendar) filter(keep func(*LiturgicalEvent) bool) []*LiturgicalEvent {
	out := make([]*LiturgicalEvent, 0, len(c.events))
	for _, e := range c.events {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

type calendarJSON struct {
	Settings calendar.Settings  `json:"settings"`
	KeyDates KeyDates           `json:"key_dates"`
	Events   []*LiturgicalEvent `json:"events"`
	Messages []Message          `json:"messages"`
}

// MarshalJSON encodes the calendar with its settings, key dates, events
// and messages.
func (c *Calendar) MarshalJSON() ([]byte, error) {
	return json.Marshal(calendarJSON{
		Settings: c.settings,
		KeyDates: c.keyDates,
		Events:   c.events,
		Messages: c.messages,
	})
}

// UnmarshalJSON restores a calendar encoded by MarshalJSON.
func (c *Calendar) UnmarshalJSON(b []byte) error {
	var v calendarJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	c.settings = v.Settings
	c.keyDates = v.KeyDates
	c.events = v.Events
	c.messages = v.Messages
	return nil
}
