package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// Named rules for historically settled coincidences.
const (
	RuleStJosephHolyWeek                   = "StJosephHolyWeek"
	RuleStJosephLentSunday                 = "StJosephLentSunday"
	RuleAnnunciationHolyWeekOrOctave       = "AnnunciationHolyWeekOrOctave"
	RuleAnnunciationLentSunday             = "AnnunciationLentSunday"
	RuleImmaculateConceptionAdventSunday   = "ImmaculateConceptionAdventSunday"
	RuleNativityJohnBaptistSacredHeart2022 = "NativityJohnBaptistSacredHeart2022"
	RuleConversionStPaul2009               = "ConversionStPaul2009"
	RuleSacredHeartVigil2022               = "SacredHeartVigil2022"
)

// overrideRule is one dated exception to the generic coincidence policy.
// existing is the winning event already on the candidate's date, if any.
type overrideRule struct {
	name    string
	key     string
	since   int
	until   int
	applies func(r *run, e, existing *LiturgicalEvent) bool
	resolve func(r *run, e, existing *LiturgicalEvent) Outcome
}

func (o overrideRule) inEffect(year int) bool {
	return year >= o.since && (o.until == 0 || year < o.until)
}

var overrideRules = []overrideRule{
	{
		name:  RuleStJosephHolyWeek,
		key:   "StJoseph",
		since: calendar.MinYear,
		applies: func(r *run, e, _ *LiturgicalEvent) bool {
			return r.anchors.InHolyWeek(e.Date)
		},
		resolve: func(r *run, e, _ *LiturgicalEvent) Outcome {
			if r.settings.Year >= 2008 {
				return r.transfer(e, r.anchors.PalmSunday.AddDate(0, 0, -1), RuleStJosephHolyWeek,
					"falls in Holy Week and is anticipated to the Saturday before Palm Sunday")
			}
			return r.transfer(e, r.nextFreeDay(r.anchors.Easter.AddDate(0, 0, calendar.OffsetEaster2+1)), RuleStJosephHolyWeek,
				"falls in Holy Week and is transferred after the Octave of Easter")
		},
	},
	{
		name:  RuleStJosephLentSunday,
		key:   "StJoseph",
		since: calendar.MinYear,
		applies: func(r *run, e, existing *LiturgicalEvent) bool {
			return calendar.IsSunday(e.Date) && isSundayOf(existing, "Lent")
		},
		resolve: func(r *run, e, _ *LiturgicalEvent) Outcome {
			return r.transfer(e, r.nextFreeDay(e.Date.AddDate(0, 0, 1)), RuleStJosephLentSunday,
				"falls on a Sunday of Lent and is transferred to the following Monday")
		},
	},
	{
		name:  RuleAnnunciationHolyWeekOrOctave,
		key:   "Annunciation",
		since: calendar.MinYear,
		applies: func(r *run, e, _ *LiturgicalEvent) bool {
			return r.anchors.InHolyWeekOrEasterOctave(e.Date)
		},
		resolve: func(r *run, e, _ *LiturgicalEvent) Outcome {
			return r.transfer(e, r.nextFreeDay(r.anchors.Easter.AddDate(0, 0, calendar.OffsetEaster2+1)), RuleAnnunciationHolyWeekOrOctave,
				"falls between Palm Sunday and the Second Sunday of Easter and is transferred to the Monday after it")
		},
	},
	{
		name:  RuleAnnunciationLentSunday,
		key:   "Annunciation",
		since: calendar.MinYear,
		applies: func(r *run, e, existing *LiturgicalEvent) bool {
			return calendar.IsSunday(e.Date) && isSundayOf(existing, "Lent")
		},
		resolve: func(r *run, e, _ *LiturgicalEvent) Outcome {
			return r.transfer(e, r.nextFreeDay(e.Date.AddDate(0, 0, 1)), RuleAnnunciationLentSunday,
				"falls on a Sunday of Lent and is transferred to the following Monday")
		},
	},
	{
		name:  RuleImmaculateConceptionAdventSunday,
		key:   "ImmaculateConception",
		since: calendar.MinYear,
		applies: func(r *run, e, existing *LiturgicalEvent) bool {
			return calendar.IsSunday(e.Date) && isSundayOf(existing, "Advent")
		},
		resolve: func(r *run, e, _ *LiturgicalEvent) Outcome {
			return r.transfer(e, calendar.Date(r.settings.Year, time.December, 9), RuleImmaculateConceptionAdventSunday,
				"falls on a Sunday of Advent and is transferred to Monday, December 9")
		},
	},
	{
		name:  RuleNativityJohnBaptistSacredHeart2022,
		key:   "NativityJohnBaptist",
		since: 2022,
		until: 2023,
		applies: func(_ *run, _, existing *LiturgicalEvent) bool {
			return existing != nil && existing.Key == "SacredHeart"
		},
		resolve: func(r *run, e, _ *LiturgicalEvent) Outcome {
			return r.transfer(e, calendar.Date(2022, time.June, 23), RuleNativityJohnBaptistSacredHeart2022,
				"coincides with the Most Sacred Heart of Jesus and is anticipated to Thursday, June 23")
		},
	},
	{
		name:  RuleConversionStPaul2009,
		key:   "ConversionStPaul",
		since: 2009,
		until: 2010,
		applies: func(_ *run, e, _ *LiturgicalEvent) bool {
			return calendar.IsSunday(e.Date)
		},
		resolve: func(r *run, e, existing *LiturgicalEvent) Outcome {
			e.Rank = calendar.RankOptionalMemorial
			if !r.add(e) {
				return Outcome{Kind: OutcomeSuppressed, Loser: e.Key, Date: e.Date}
			}
			other := ""
			if existing != nil {
				other = existing.Key
			}
			r.note(Message{
				Code: CodeOverride, Rule: RuleConversionStPaul2009, Event: e.Key, Other: other,
				Date: e.Date, Rank: calendar.RankFeast, OtherRank: calendar.RankOptionalMemorial,
				Text: fmt.Sprintf("%s falls on a Sunday in the Pauline Year and may be celebrated as an optional memorial", e.Name),
			})
			return Outcome{Kind: OutcomeOverride, Winner: e.Key, Rule: RuleConversionStPaul2009, Date: e.Date}
		},
	},
}

// applyOverrides consults the named rules in table order.
func (r *run) applyOverrides(e, existing *LiturgicalEvent) (Outcome, bool) {
	for _, rule := range overrideRules {
		if rule.key != e.Key || !rule.inEffect(r.settings.Year) {
			continue
		}
		if rule.applies(r, e, existing) {
			return rule.resolve(r, e, existing), true
		}
	}
	return Outcome{}, false
}

// transfer places e on a new date on behalf of rule. A target already
// holding a solemnity or feast gives way to the next free day.
func (r *run) transfer(e *LiturgicalEvent, to time.Time, rule, reason string) Outcome {
	from := e.Date
	to = r.nextFreeDay(calendar.Truncate(to))
	e.Date = to
	if !r.add(e) {
		return Outcome{Kind: OutcomeSuppressed, Loser: e.Key, Rule: rule, Date: from}
	}
	r.displace(e)
	r.note(Message{
		Code: CodeTransferred, Rule: rule, Event: e.Key, Date: from, To: to, Rank: e.Rank,
		Text: fmt.Sprintf("%s %s (%s)", e.Name, reason, calendar.FormatDate(to)),
	})
	return Outcome{Kind: OutcomeTransferred, Winner: e.Key, Rule: rule, Date: from, To: to}
}

// nextFreeDay returns the first date on or after from that holds no
// solemnity or feast.
func (r *run) nextFreeDay(from time.Time) time.Time {
	d := from
	for r.index.InSolemnitiesOrFeasts(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func isSundayOf(e *LiturgicalEvent, season string) bool {
	return e != nil && strings.HasPrefix(e.Key, season) && calendar.IsSunday(e.Date)
}

// vigilRule settles a dated meeting between the Vigil Mass of a
// solemnity and another solemnity on the day before it.
type vigilRule struct {
	name   string
	year   int
	key    string
	other  string
	stands bool
	reason string
}

var vigilRules = []vigilRule{
	{
		name:   RuleSacredHeartVigil2022,
		year:   2022,
		key:    "SacredHeart",
		other:  "NativityJohnBaptist",
		stands: true,
		reason: "the Vigil Mass of the Most Sacred Heart of Jesus is celebrated on the evening of June 23; the Nativity of Saint John the Baptist has no Second Vespers",
	},
}

// vigilOverride returns the named rule for a vigil of e falling on other.
func (r *run) vigilOverride(e, other *LiturgicalEvent) (vigilRule, bool) {
	for _, rule := range vigilRules {
		if rule.year == r.settings.Year && rule.key == e.Key && rule.other == other.Key {
			return rule, true
		}
	}
	return vigilRule{}, false
}
