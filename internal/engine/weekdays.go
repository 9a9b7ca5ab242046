package engine

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

type weekdayKind int

const (
	weekdayPlain weekdayKind = iota
	weekdayPrivileged
	weekdayEpiphany
)

// weekdayOf builds the seasonal weekday for date. It returns nil for
// Sundays and for days owned by the Proprium de Tempore (Christmas, Mary
// Mother of God, Ash Wednesday, Holy Week, the Octave of Easter).
func (r *run) weekdayOf(date time.Time) (*LiturgicalEvent, weekdayKind) {
	a := r.anchors
	if calendar.IsSunday(date) {
		return nil, weekdayPlain
	}

	e := &LiturgicalEvent{Date: date, Rank: calendar.RankWeekday, Type: calendar.EventMobile}
	suffix := date.Format("0102")
	pos := a.Resolve(date)

	switch {
	case date.Month() == time.January && date.Day() == 1:
		return nil, weekdayPlain

	case date.Before(a.Baptism):
		if calendar.SameDay(date, a.Epiphany) {
			return nil, weekdayPlain
		}
		e.Key = keyChristmasWeekday + suffix
		e.Name = r.loc.ChristmasWeekday(date, date.After(a.Epiphany))
		e.Colors = white
		return e, weekdayEpiphany

	case calendar.SameDay(date, a.Baptism):
		return nil, weekdayPlain

	case date.Before(a.AshWednesday):
		return r.ordinaryWeekday(e, suffix, pos), weekdayPlain

	case calendar.SameDay(date, a.AshWednesday):
		return nil, weekdayPlain

	case date.Before(a.PalmSunday):
		e.Key = keyLentWeekday + suffix
		e.Colors = purple
		if pos.Week == 0 {
			e.Name = r.loc.AshWeekday(date.Weekday())
		} else {
			e.Name = r.loc.SeasonWeekday(calendar.SeasonLent, pos.Week, date.Weekday())
		}
		return e, weekdayPrivileged

	case !date.After(a.Easter.AddDate(0, 0, calendar.OffsetEaster2)):
		return nil, weekdayPlain

	case date.Before(a.Pentecost):
		e.Key = keyEasterWeekday + suffix
		e.Name = r.loc.SeasonWeekday(calendar.SeasonEaster, pos.Week, date.Weekday())
		e.Colors = white
		return e, weekdayPlain

	case date.Before(a.Advent1):
		if calendar.SameDay(date, a.Pentecost) {
			return nil, weekdayPlain
		}
		return r.ordinaryWeekday(e, suffix, pos), weekdayPlain

	case date.Before(a.Christmas):
		e.Key = keyAdventWeekday + suffix
		e.Colors = purple
		if date.Day() >= 17 {
			e.Name = r.loc.AdventPrivilegedWeekday(date.Day())
			return e, weekdayPrivileged
		}
		e.Name = r.loc.SeasonWeekday(calendar.SeasonAdvent, pos.Week, date.Weekday())
		return e, weekdayPlain

	case calendar.SameDay(date, a.Christmas):
		return nil, weekdayPlain

	default:
		e.Key = keyChristmasWeekday + suffix
		e.Name = r.loc.ChristmasOctaveDay(date.Day() - 24)
		e.Colors = white
		return e, weekdayPrivileged
	}
}

func (r *run) ordinaryWeekday(e *LiturgicalEvent, suffix string, pos calendar.ResolvedPosition) *LiturgicalEvent {
	e.Key = keyOrdWeekday + suffix
	e.Name = r.loc.SeasonWeekday(calendar.SeasonOrdinaryTime, pos.Week, e.Date.Weekday())
	e.Colors = green
	return e
}

// weekday returns the seasonal weekday for date, or nil.
func (r *run) weekday(date time.Time) *LiturgicalEvent {
	e, _ := r.weekdayOf(date)
	return e
}

// addWeekday creates the weekday for date and files it in the matching
// weekday index.
func (r *run) addWeekday(date time.Time) bool {
	e, kind := r.weekdayOf(date)
	if e == nil || !r.add(e) {
		return false
	}
	switch kind {
	case weekdayPrivileged:
		r.index.MarkWeekdayAdventChristmasLent(e.Key)
	case weekdayEpiphany:
		r.index.MarkWeekdayEpiphany(e.Key)
	}
	return true
}

// privilegedWeekdays is phase 8: the weekdays of Advent, of the Octave of
// Christmas and of Lent, on days free of solemnities and feasts.
func (r *run) privilegedWeekdays() {
	a := r.anchors
	ranges := [][2]time.Time{
		{a.Advent1.AddDate(0, 0, 1), a.Christmas},
		{a.Christmas.AddDate(0, 0, 1), calendar.Date(r.settings.Year+1, time.January, 1)},
		{a.AshWednesday.AddDate(0, 0, 1), a.PalmSunday},
	}
	for _, rg := range ranges {
		for d := rg[0]; d.Before(rg[1]); d = d.AddDate(0, 0, 1) {
			if r.index.NotInSolemnitiesOrFeasts(d) {
				r.addWeekday(d)
			}
		}
	}
}

// remainingWeekdays is phase 11: the weekdays of Easter Time and of
// Ordinary Time on days free of solemnities, feasts and memorials.
func (r *run) remainingWeekdays() {
	a := r.anchors
	ranges := [][2]time.Time{
		{a.Baptism.AddDate(0, 0, 1), a.AshWednesday},
		{a.Easter.AddDate(0, 0, calendar.OffsetEaster2+1), a.Pentecost},
		{a.Pentecost.AddDate(0, 0, 1), a.Advent1},
	}
	for _, rg := range ranges {
		for d := rg[0]; d.Before(rg[1]); d = d.AddDate(0, 0, 1) {
			if r.index.NotInSolemnitiesFeastsOrMemorials(d) {
				r.addWeekday(d)
			}
		}
	}
}

// saturdayMemorials is phase 12: the Saturday memorial of the Blessed
// Virgin Mary on Saturdays of Ordinary Time that hold no solemnity,
// feast or obligatory memorial.
func (r *run) saturdayMemorials() {
	a := r.anchors
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.SA},
		Dtstart:   a.Baptism,
		Until:     a.Advent1,
	})
	if err != nil {
		r.logger.Error("saturday recurrence", "error", err)
		return
	}

	for _, d := range rule.All() {
		d = calendar.Truncate(d)
		if a.Resolve(d).Season != calendar.SeasonOrdinaryTime {
			continue
		}
		if r.index.InSolemnitiesFeastsOrMemorials(d) {
			continue
		}
		e := &LiturgicalEvent{
			Key:     keySatMemBVM + d.Format("0102"),
			Name:    r.names["SatMemBVM"],
			Date:    d,
			Rank:    calendar.RankOptionalMemorial,
			Colors:  white,
			Commons: []string{"Blessed Virgin Mary"},
			Type:    calendar.EventMobile,
		}
		r.add(e)
	}
}

// refill restores the seasonal weekday on a date left empty by a move
// or a suppression.
func (r *run) refill(date time.Time) {
	if len(r.index.FindByDate(date)) > 0 {
		return
	}
	if r.addWeekday(date) {
		r.logger.Debug("weekday restored", "date", calendar.FormatDate(date))
	}
}
