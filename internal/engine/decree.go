package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
)

// directiveEvent builds the event a createNew directive describes. The
// date comes from Month/Day or from the named relative date; an unknown
// relative date is recorded and yields false.
func (r *run) directiveEvent(d data.Directive, origin Origin, source string) (*LiturgicalEvent, bool) {
	spec := d.Event
	e := &LiturgicalEvent{
		Key:     spec.Key,
		Name:    spec.Name,
		Rank:    spec.Rank,
		Colors:  slices.Clone(spec.Colors),
		Commons: slices.Clone(spec.Commons),
		Type:    calendar.EventFixed,
		Origin:  origin,
		Source:  source,
	}

	if spec.Relative != "" {
		date, ok := r.relativeDate(spec.Relative)
		if !ok {
			r.note(Message{
				Code: CodeUnknownRelative, Event: spec.Key, Rank: spec.Rank, Source: source,
				After: spec.Relative,
				Text:  fmt.Sprintf("%s is not created: unknown relative date %q", spec.Name, spec.Relative),
			})
			return nil, false
		}
		e.Date = date
		e.Type = calendar.EventMobile
	} else {
		e.Date = calendar.Date(r.settings.Year, time.Month(spec.Month), spec.Day)
	}
	if len(e.Colors) == 0 {
		e.Colors = white
	}
	return e, true
}

// decreesCreating places the createNew decrees in effect whose rank
// satisfies match.
func (r *run) decreesCreating(match func(calendar.Rank) bool) {
	for _, d := range r.ref.Decrees() {
		if d.Action != data.ActionCreateNew || !d.InEffect(r.settings.Year) || !match(d.Event.Rank) {
			continue
		}
		e, ok := r.directiveEvent(d, OriginUniversal, d.ID)
		if !ok {
			continue
		}
		if o := r.place(e); o.Placed() {
			r.note(Message{
				Code: CodeCreated, Event: e.Key, Date: e.Date, Rank: e.Rank, Source: d.ID,
				Text: fmt.Sprintf("%s is added to the calendar by decree %s", e.Name, d.ID),
			})
		}
	}
}

// doctorDecrees renames the celebrations of saints declared Doctors of
// the Church.
func (r *run) doctorDecrees() {
	for _, d := range r.ref.Decrees() {
		if d.Action != data.ActionMakeDoctor || !d.InEffect(r.settings.Year) {
			continue
		}
		e, ok := r.index.Get(d.Event.Key)
		if !ok {
			r.noteMissing(d, d.ID)
			continue
		}
		before := e.Name
		r.index.Rename(e.Key, d.Event.Name)
		r.note(Message{
			Code: CodeDoctor, Event: e.Key, Date: e.Date, Rank: e.Rank,
			Before: before, After: e.Name, Source: d.ID,
			Text: fmt.Sprintf("%s is declared a Doctor of the Church; the celebration is now %q", before, e.Name),
		})
	}
}

// propertyDecrees applies the setProperty decrees that target events
// not defined by a Missal row; row targets were handled by rowDecrees.
func (r *run) propertyDecrees() {
	for _, d := range r.ref.Decrees() {
		if d.Action != data.ActionSetProperty || !d.InEffect(r.settings.Year) || r.isRow(d.Event.Key) {
			continue
		}
		if !r.setProperty(d, OriginUniversal, d.ID) {
			r.noteMissing(d, d.ID)
		}
	}
}

// setProperty changes the rank or the name of an existing event through
// the index mutators and records the before and after values. It reports
// false when the target is not on the calendar.
func (r *run) setProperty(d data.Directive, origin Origin, source string) bool {
	e, ok := r.index.Get(d.Event.Key)
	if !ok {
		return false
	}

	switch d.Metadata.Property {
	case data.PropertyRank:
		before := e.Rank
		if d.Event.Rank == before {
			return true
		}
		if d.Event.Rank > before {
			if !r.raise(e, d.Event.Rank, source) {
				return true
			}
		} else {
			r.index.SetRank(e.Key, d.Event.Rank)
		}
		r.note(Message{
			Code: CodeReranked, Event: e.Key, Date: e.Date, Rank: e.Rank, OtherRank: before,
			Before: before.String(), After: e.Rank.String(), Source: source,
			Text: fmt.Sprintf("%s changes rank from %s to %s (%s)", e.Name, before, e.Rank, source),
		})
	case data.PropertyName:
		before := e.Name
		r.index.Rename(e.Key, d.Event.Name)
		r.note(Message{
			Code: CodeRenamed, Event: e.Key, Date: e.Date, Rank: e.Rank,
			Before: before, After: e.Name, Source: source,
			Text: fmt.Sprintf("%q is renamed %q (%s)", before, e.Name, source),
		})
	default:
		r.logger.Warn("unsupported property", "directive", d.ID, "property", d.Metadata.Property)
		return true
	}
	if origin != OriginUniversal {
		e.Origin = origin
		e.Source = source
	}
	return true
}

func (r *run) noteMissing(d data.Directive, source string) {
	r.note(Message{
		Code: CodeMissingTarget, Event: d.Event.Key, Rank: d.Event.Rank, Source: source,
		Text: fmt.Sprintf("%s (%s) cannot be applied: %s is not on the calendar in %d",
			d.ID, d.Action, d.Event.Key, r.settings.Year),
	})
}
