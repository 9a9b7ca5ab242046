package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// OutcomeKind is the decision taken for a candidate celebration.
type OutcomeKind int

const (
	// OutcomeCreated: the candidate was added at its own rank and date.
	OutcomeCreated OutcomeKind = iota
	// OutcomeSuppressed: a higher celebration holds the date.
	OutcomeSuppressed
	// OutcomeDemoted: two obligatory memorials met; both became optional.
	OutcomeDemoted
	// OutcomeCommemoration: the memorial fell on a privileged weekday.
	OutcomeCommemoration
	// OutcomeArbitration: same-rank coincidence without a rule; the
	// existing celebration was kept and the candidate not created.
	OutcomeArbitration
	// OutcomeTransferred: a named rule moved the candidate.
	OutcomeTransferred
	// OutcomeOverride: a named rule decided the coincidence otherwise.
	OutcomeOverride
)

var outcomeNames = [...]string{
	OutcomeCreated:       "created",
	OutcomeSuppressed:    "suppressed",
	OutcomeDemoted:       "demoted",
	OutcomeCommemoration: "commemoration",
	OutcomeArbitration:   "arbitration",
	OutcomeTransferred:   "transferred",
	OutcomeOverride:      "override",
}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the structured result of placing one candidate.
type Outcome struct {
	Kind   OutcomeKind
	Winner string
	Loser  string
	Rule   string
	Date   time.Time
	To     time.Time
}

// Placed reports whether the candidate is on the calendar afterwards.
func (o Outcome) Placed() bool {
	switch o.Kind {
	case OutcomeCreated, OutcomeDemoted, OutcomeCommemoration, OutcomeTransferred:
		return true
	case OutcomeOverride:
		return o.Winner != ""
	default:
		return false
	}
}

// CanBeCreated applies the creation policy for a rank on a date.
// Solemnity-tier candidates are always creatable and go through
// coincidence handling instead.
func (ix *Index) CanBeCreated(rank calendar.Rank, date time.Time) bool {
	switch tierOf(rank) {
	case tierSolemnity:
		return true
	case tierFeast:
		return ix.NotInSolemnities(date)
	case tierMemorial:
		return ix.NotInSolemnitiesOrFeasts(date)
	default:
		if rank == calendar.RankOptionalMemorial {
			return ix.NotInSolemnitiesFeastsOrMemorials(date)
		}
		return true
	}
}

// Coincides reports whether date already holds an event of the same tier
// as rank.
func (ix *Index) Coincides(rank calendar.Rank, date time.Time) bool {
	switch tierOf(rank) {
	case tierSolemnity:
		return ix.InSolemnities(date)
	case tierFeast:
		return ix.InFeasts(date)
	case tierMemorial:
		return ix.InMemorials(date)
	default:
		return false
	}
}

// place runs a candidate through the named overrides and the creation
// policy, adds it when allowed and records the decision.
func (r *run) place(e *LiturgicalEvent) Outcome {
	date := e.Date
	existing := r.index.WinnerAt(date)

	if o, ok := r.applyOverrides(e, existing); ok {
		return o
	}

	if !r.index.CanBeCreated(e.Rank, date) {
		other := r.index.WinnerAt(date)
		r.note(Message{
			Code: CodeSuppressed, Event: e.Key, Other: other.Key,
			Date: date, Rank: e.Rank, OtherRank: other.Rank,
			Text: fmt.Sprintf("%s (%s) is not celebrated on %s because %s (%s) takes precedence",
				e.Name, e.Rank, calendar.FormatDate(date), other.Name, other.Rank),
		})
		return Outcome{Kind: OutcomeSuppressed, Winner: other.Key, Loser: e.Key, Date: date}
	}

	if r.index.Coincides(e.Rank, date) {
		return r.coincide(e, existing)
	}

	if (e.Rank == calendar.RankMemorial || e.Rank == calendar.RankOptionalMemorial) &&
		r.index.InWeekdaysAdventChristmasLent(date) {
		before := e.Rank
		e.Rank = calendar.RankCommemoration
		if !r.add(e) {
			return Outcome{Kind: OutcomeSuppressed, Loser: e.Key, Date: date}
		}
		r.note(Message{
			Code: CodeCommemoration, Event: e.Key, Date: date, Rank: before,
			Text: fmt.Sprintf("%s falls on a privileged weekday on %s and is reduced to a commemoration",
				e.Name, calendar.FormatDate(date)),
		})
		return Outcome{Kind: OutcomeCommemoration, Winner: e.Key, Date: date}
	}

	if !r.add(e) {
		return Outcome{Kind: OutcomeSuppressed, Loser: e.Key, Date: date}
	}
	r.displace(e)
	return Outcome{Kind: OutcomeCreated, Winner: e.Key, Date: date}
}

// coincide resolves a same-tier meeting of e with the existing event.
// Within the solemnity tier the higher rank wins; arbitration is left for
// equal ranks.
func (r *run) coincide(e, existing *LiturgicalEvent) Outcome {
	date := e.Date

	if tierOf(e.Rank) == tierMemorial {
		r.index.SetRank(existing.Key, calendar.RankOptionalMemorial)
		e.Rank = calendar.RankOptionalMemorial
		if !r.add(e) {
			return Outcome{Kind: OutcomeSuppressed, Loser: e.Key, Date: date}
		}
		r.note(Message{
			Code: CodeDemoted, Event: e.Key, Other: existing.Key, Date: date,
			Rank: calendar.RankMemorial, OtherRank: calendar.RankMemorial,
			Text: fmt.Sprintf("%s and %s coincide on %s; both are reduced to optional memorials",
				e.Name, existing.Name, calendar.FormatDate(date)),
		})
		return Outcome{Kind: OutcomeDemoted, Winner: e.Key, Loser: existing.Key, Date: date}
	}

	switch {
	case e.Rank < existing.Rank:
		r.note(Message{
			Code: CodeSuppressed, Event: e.Key, Other: existing.Key,
			Date: date, Rank: e.Rank, OtherRank: existing.Rank,
			Text: fmt.Sprintf("%s (%s) is not celebrated on %s because %s (%s) takes precedence",
				e.Name, e.Rank, calendar.FormatDate(date), existing.Name, existing.Rank),
		})
		return Outcome{Kind: OutcomeSuppressed, Winner: existing.Key, Loser: e.Key, Date: date}
	case e.Rank > existing.Rank:
		r.displaceBelow(e, e.Rank)
		if !r.add(e) {
			return Outcome{Kind: OutcomeSuppressed, Loser: e.Key, Date: date}
		}
		return Outcome{Kind: OutcomeCreated, Winner: e.Key, Loser: existing.Key, Date: date}
	}

	r.note(Message{
		Code: CodeArbitration, Event: e.Key, Other: existing.Key, Date: date,
		Rank: e.Rank, OtherRank: existing.Rank,
		Text: fmt.Sprintf("%s (%s) coincides with %s (%s) on %s; no rule settles it, %s is kept",
			e.Name, e.Rank, existing.Name, existing.Rank, calendar.FormatDate(date), existing.Name),
	})
	return Outcome{Kind: OutcomeArbitration, Winner: existing.Key, Loser: e.Key, Date: date}
}

// displace removes the events on the winner's date that may not co-exist
// with it: everything below a feast or higher, and the optional
// memorials and plain weekdays below an obligatory memorial.
func (r *run) displace(winner *LiturgicalEvent) {
	r.displaceBelow(winner, winner.Rank)
}

// displaceBelow is displace for a winner about to hold rank.
func (r *run) displaceBelow(winner *LiturgicalEvent, rank calendar.Rank) {
	if rank < calendar.RankMemorial || winner.IsVigilMass {
		return
	}
	for _, ev := range r.index.FindByDate(winner.Date) {
		if ev.Key == winner.Key || ev.IsVigilMass || ev.Rank >= rank {
			continue
		}
		if rank == calendar.RankMemorial && !displaceableByMemorial(ev) {
			continue
		}
		r.index.Remove(ev.Key)
		r.note(Message{
			Code: CodeDisplaced, Event: ev.Key, Other: winner.Key, Date: winner.Date,
			Rank: ev.Rank, OtherRank: rank,
			Text: fmt.Sprintf("%s is displaced by %s on %s",
				ev.Name, winner.Name, calendar.FormatDate(winner.Date)),
		})
	}
}

func displaceableByMemorial(ev *LiturgicalEvent) bool {
	if ev.Rank == calendar.RankOptionalMemorial {
		return true
	}
	return ev.Rank == calendar.RankWeekday &&
		(strings.HasPrefix(ev.Key, keyOrdWeekday) || strings.HasPrefix(ev.Key, keyEasterWeekday))
}

// blockerAt returns an event other than e on date ranked at least rank,
// which forbids raising e to rank there.
func (r *run) blockerAt(e *LiturgicalEvent, rank calendar.Rank, date time.Time) *LiturgicalEvent {
	if tierOf(rank) == tierNone {
		return nil
	}
	for _, ev := range r.index.FindByDate(date) {
		if ev.Key == e.Key || ev.IsVigilMass {
			continue
		}
		if tierOf(ev.Rank) != tierNone && ev.Rank >= rank {
			return ev
		}
	}
	return nil
}

// raise lifts e to rank and displaces what may no longer co-exist with
// it. When another event of that rank or above holds the date, e is left
// unchanged and the conflict is recorded.
func (r *run) raise(e *LiturgicalEvent, rank calendar.Rank, source string) bool {
	if other := r.blockerAt(e, rank, e.Date); other != nil {
		r.note(Message{
			Code: CodeArbitration, Event: e.Key, Other: other.Key, Date: e.Date,
			Rank: rank, OtherRank: other.Rank, Source: source,
			Text: fmt.Sprintf("%s cannot be raised to %s on %s because %s (%s) holds the date",
				e.Name, rank, calendar.FormatDate(e.Date), other.Name, other.Rank),
		})
		return false
	}
	r.displaceBelow(e, rank)
	r.index.SetRank(e.Key, rank)
	return true
}
