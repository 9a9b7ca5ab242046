package engine

import (
	"fmt"
	"slices"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// vigils gives a Vigil Mass to every Sunday and solemnity that may have
// one and settles its meeting with a solemnity on the day before.
func (r *run) vigils() {
	events := r.index.Events()
	for _, e := range events {
		if !e.IsVigilMass && tierOf(e.Rank) == tierSolemnity {
			e.HasVespersII = true
		}
	}

	for _, e := range events {
		if r.wantsVigil(e) {
			r.vigil(e)
		}
	}
}

// wantsVigil reports whether e is a Sunday or a solemnity outside the
// days that never have a Vigil Mass: All Souls, Ash Wednesday, and Palm
// Sunday through the Second Sunday of Easter.
func (r *run) wantsVigil(e *LiturgicalEvent) bool {
	if e.IsVigilMass || tierOf(e.Rank) != tierSolemnity {
		return false
	}
	if !calendar.IsSunday(e.Date) && e.Rank < calendar.RankSolemnity {
		return false
	}
	switch e.Key {
	case "AllSouls", "AshWednesday":
		return false
	}
	return !r.anchors.InHolyWeekOrEasterOctave(e.Date)
}

func (r *run) vigil(e *LiturgicalEvent) {
	date := e.Date.AddDate(0, 0, -1)
	if date.Year() != r.settings.Year {
		r.note(Message{
			Code: CodeVigilOutOfBounds, Event: e.Key, Date: e.Date, To: date, Rank: e.Rank,
			Text: fmt.Sprintf("the Vigil Mass of %s falls on %s, outside the year", e.Name, calendar.FormatDate(date)),
		})
		return
	}

	v := &LiturgicalEvent{
		Key:         e.Key + vigilSuffix,
		Name:        r.loc.VigilMass(e.Name),
		Date:        date,
		Rank:        e.Rank,
		DisplayRank: e.DisplayRank,
		Colors:      slices.Clone(e.Colors),
		Commons:     slices.Clone(e.Commons),
		Type:        e.Type,
		IsVigilMass: true,
		VigilFor:    e.Key,
		Origin:      e.Origin,
		Source:      e.Source,
	}

	other := r.index.WinningSolemnityAt(date)
	if other == nil {
		r.keepVigil(e, v)
		return
	}

	if rule, ok := r.vigilOverride(e, other); ok {
		if rule.stands {
			r.keepVigil(e, v)
			other.HasVespersII = false
		} else {
			r.dropVigil(e)
		}
		r.note(Message{
			Code: CodeVigilOverride, Rule: rule.name, Event: v.Key, Other: other.Key, Date: date,
			Rank: e.Rank, OtherRank: other.Rank,
			Text: fmt.Sprintf("%s: %s", rule.name, rule.reason),
		})
		return
	}

	switch {
	case e.Rank < other.Rank, e.Rank == other.Rank && other.IsLordOrMary() && !e.IsLordOrMary():
		r.dropVigil(e)
		r.note(Message{
			Code: CodeVigilSuppressed, Event: v.Key, Other: other.Key, Date: date,
			Rank: e.Rank, OtherRank: other.Rank,
			Text: fmt.Sprintf("%s is not celebrated on %s: %s (%s) takes precedence and keeps its Second Vespers",
				v.Name, calendar.FormatDate(date), other.Name, other.Rank),
		})

	case e.Rank > other.Rank, e.IsLordOrMary() && !other.IsLordOrMary():
		r.keepVigil(e, v)
		other.HasVespersII = false
		r.note(Message{
			Code: CodeVigilPrecedence, Event: v.Key, Other: other.Key, Date: date,
			Rank: e.Rank, OtherRank: other.Rank,
			Text: fmt.Sprintf("%s is celebrated on the evening of %s; %s (%s) gives way and has no Second Vespers",
				v.Name, calendar.FormatDate(date), other.Name, other.Rank),
		})

	default:
		r.dropVigil(e)
		r.note(Message{
			Code: CodeVigilUnresolved, Event: v.Key, Other: other.Key, Date: date,
			Rank: e.Rank, OtherRank: other.Rank,
			Text: fmt.Sprintf("%s coincides with %s on %s; no rule settles the conflict and the vigil is not created",
				v.Name, other.Name, calendar.FormatDate(date)),
		})
	}
}

func (r *run) keepVigil(e, v *LiturgicalEvent) {
	if !r.add(v) {
		return
	}
	e.HasVigilMass = true
	e.HasVespersI = true
}

func (r *run) dropVigil(e *LiturgicalEvent) {
	e.HasVigilMass = false
	e.HasVespersI = false
}
