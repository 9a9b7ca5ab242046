package engine

import (
	"fmt"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
)

func originOf(kind data.RegionKind) Origin {
	switch kind {
	case data.RegionWider:
		return OriginWider
	case data.RegionDiocesan:
		return OriginDiocesan
	default:
		return OriginNational
	}
}

// regional layers one wider-region, national or diocesan calendar over
// the calendar built so far: its Missal editions first, then its
// directives in file order.
func (r *run) regional(region *data.RegionalCalendar) {
	origin := originOf(region.Kind)
	year := r.settings.Year
	before := len(r.messages)

	for _, edition := range region.Missals {
		if !edition.InEffect(year) {
			continue
		}
		for _, row := range edition.Rows {
			r.regionalRow(sanctorumRow{SanctorumRow: row, source: edition.ID}, origin)
		}
	}

	for _, d := range region.Directives {
		if !d.InEffect(year) {
			continue
		}
		switch d.Action {
		case data.ActionCreateNew:
			r.regionalCreate(d, origin, region.ID)
		case data.ActionSetProperty:
			if !r.setProperty(d, origin, region.ID) {
				r.noteMissing(d, region.ID)
			}
		case data.ActionMoveEvent:
			r.moveEvent(d, origin, region.ID)
		case data.ActionMakePatron:
			r.makePatron(d, origin, region.ID)
		default:
			r.logger.Warn("directive not supported in regional calendars",
				"region", region.ID, "directive", d.ID, "action", d.Action)
		}
	}

	r.logger.Debug("regional calendar applied",
		"region", region.ID,
		"kind", region.Kind,
		"messages", len(r.messages)-before,
	)
}

// regionalRow applies one row of a national Missal edition. A key the
// universal calendar already holds is re-ranked, renamed or moved;
// anything else is created through the creation policy.
func (r *run) regionalRow(row sanctorumRow, origin Origin) {
	year := r.settings.Year
	e, ok := r.index.Get(row.Key)
	if !ok {
		ev := row.event(year)
		ev.Origin = origin
		if r.place(ev).Placed() {
			r.note(Message{
				Code: CodeCreated, Event: ev.Key, Date: ev.Date, Rank: ev.Rank, Source: row.source,
				Text: fmt.Sprintf("%s is added by the %s edition", ev.Name, row.source),
			})
		}
		return
	}

	if to := row.date(year); !calendar.SameDay(to, e.Date) {
		if !r.relocate(e, to, row.source) {
			return
		}
	}
	if row.Rank != e.Rank {
		before := e.Rank
		changed := true
		if row.Rank > before {
			changed = r.raise(e, row.Rank, row.source)
		} else {
			r.index.SetRank(e.Key, row.Rank)
		}
		if changed {
			r.note(Message{
				Code: CodeReranked, Event: e.Key, Date: e.Date, Rank: e.Rank, OtherRank: before,
				Before: before.String(), After: e.Rank.String(), Source: row.source,
				Text: fmt.Sprintf("%s changes rank from %s to %s in the %s edition", e.Name, before, e.Rank, row.source),
			})
		}
	}
	if row.Name != "" && row.Name != e.Name {
		before := e.Name
		r.index.Rename(e.Key, row.Name)
		r.note(Message{
			Code: CodeRenamed, Event: e.Key, Date: e.Date, Rank: e.Rank,
			Before: before, After: e.Name, Source: row.source,
			Text: fmt.Sprintf("%q is renamed %q in the %s edition", before, e.Name, row.source),
		})
	}
	e.Origin = origin
	e.Source = row.source
}

func (r *run) regionalCreate(d data.Directive, origin Origin, source string) {
	e, ok := r.directiveEvent(d, origin, source)
	if !ok {
		return
	}
	if r.place(e).Placed() {
		r.note(Message{
			Code: CodeCreated, Event: e.Key, Date: e.Date, Rank: e.Rank, Source: source,
			Text: fmt.Sprintf("%s is added by the %s calendar", e.Name, source),
		})
	}
}

// moveEvent relocates an existing celebration to the directive's date.
func (r *run) moveEvent(d data.Directive, origin Origin, source string) {
	e, ok := r.index.Get(d.Event.Key)
	if !ok {
		r.noteMissing(d, source)
		return
	}

	var to time.Time
	if d.Event.Relative != "" {
		date, ok := r.relativeDate(d.Event.Relative)
		if !ok {
			r.note(Message{
				Code: CodeUnknownRelative, Event: e.Key, Date: e.Date, Rank: e.Rank, Source: source,
				After: d.Event.Relative,
				Text:  fmt.Sprintf("%s is not moved: unknown relative date %q", e.Name, d.Event.Relative),
			})
			return
		}
		to = date
	} else {
		to = calendar.Date(r.settings.Year, time.Month(d.Event.Month), d.Event.Day)
	}

	if r.relocate(e, to, source) {
		e.Origin = origin
		e.Source = source
	}
}

// relocate moves e to a date free of solemnities, feasts and memorials.
// When the destination is taken, e is removed from the calendar and the
// suppression recorded. The vacated date gets its weekday back.
func (r *run) relocate(e *LiturgicalEvent, to time.Time, source string) bool {
	from := e.Date
	if other := r.blockerAt(e, calendar.RankMemorial, to); other != nil {
		r.index.Remove(e.Key)
		r.note(Message{
			Code: CodeMoveSuppressed, Event: e.Key, Other: other.Key, Date: from, To: to,
			Rank: e.Rank, OtherRank: other.Rank, Source: source,
			Text: fmt.Sprintf("%s cannot be moved to %s because %s (%s) is celebrated that day; it is not celebrated this year",
				e.Name, calendar.FormatDate(to), other.Name, other.Rank),
		})
		r.refill(from)
		return false
	}

	r.index.MoveDate(e.Key, to)
	r.displace(e)
	r.note(Message{
		Code: CodeMoved, Event: e.Key, Date: from, To: to, Rank: e.Rank, Source: source,
		Text: fmt.Sprintf("%s is moved from %s to %s", e.Name, calendar.FormatDate(from), calendar.FormatDate(to)),
	})
	r.refill(from)
	return true
}

// makePatron raises an existing celebration to at least a feast and
// appends the patronage to its name.
func (r *run) makePatron(d data.Directive, origin Origin, source string) {
	e, ok := r.index.Get(d.Event.Key)
	if !ok {
		r.notePatronMissing(d, source)
		return
	}

	target := max(d.Event.Rank, calendar.RankFeast)
	before := e.Rank
	if e.Rank < target && !r.raise(e, target, source) {
		return
	}
	if d.Metadata.Suffix != "" {
		r.index.Rename(e.Key, e.Name+", "+d.Metadata.Suffix)
	}
	e.Origin = origin
	e.Source = source
	r.note(Message{
		Code: CodePatron, Event: e.Key, Date: e.Date, Rank: e.Rank, OtherRank: before,
		Before: before.String(), After: e.Rank.String(), Source: source,
		Text: fmt.Sprintf("%s is celebrated as %s (%s)", e.Name, e.Rank, source),
	})
}

// notePatronMissing explains why a patron is absent: for a Missal row,
// the celebration that suppressed it on its date.
func (r *run) notePatronMissing(d data.Directive, source string) {
	i, ok := r.rowAt[d.Event.Key]
	if !ok {
		r.noteMissing(d, source)
		return
	}
	row := r.rows[i]
	date := row.date(r.settings.Year)
	other := r.index.WinnerAt(date)
	if other == nil {
		r.noteMissing(d, source)
		return
	}
	r.note(Message{
		Code: CodeMissingTarget, Event: row.Key, Other: other.Key, Date: date,
		Rank: row.Rank, OtherRank: other.Rank, Source: source,
		Text: fmt.Sprintf("%s cannot be kept as patron on %s: %s (%s) takes precedence",
			row.Name, calendar.FormatDate(date), other.Name, other.Rank),
	})
}
