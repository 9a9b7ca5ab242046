package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
)

// sanctorumRow is a Proprium de Sanctis row together with the edition or
// decree that last defined it.
type sanctorumRow struct {
	data.SanctorumRow
	source string
}

func (row sanctorumRow) date(year int) time.Time {
	return calendar.Date(year, time.Month(row.Month), row.Day)
}

// event builds a fresh LiturgicalEvent for the row.
func (row sanctorumRow) event(year int) *LiturgicalEvent {
	return &LiturgicalEvent{
		Key:         row.Key,
		Name:        row.Name,
		Date:        row.date(year),
		Rank:        row.Rank,
		DisplayRank: row.DisplayRank,
		Colors:      slices.Clone(row.Colors),
		Commons:     slices.Clone(row.Commons),
		Type:        calendar.EventFixed,
		Source:      row.source,
	}
}

// mergeMissals layers the universal Missal editions in effect for the
// year, oldest first. A later edition that repeats a key re-ranks,
// renames or re-dates the earlier row instead of adding a second one.
func (r *run) mergeMissals() {
	year := r.settings.Year
	r.rows = r.rows[:0]
	r.rowAt = make(map[string]int)

	for _, edition := range r.ref.Missals() {
		if !edition.InEffect(year) {
			r.logger.Debug("missal edition not in effect", "edition", edition.ID)
			continue
		}
		for _, row := range edition.Rows {
			next := sanctorumRow{SanctorumRow: row, source: edition.ID}
			i, ok := r.rowAt[row.Key]
			if !ok {
				r.rowAt[row.Key] = len(r.rows)
				r.rows = append(r.rows, next)
				continue
			}
			r.noteRowChange(r.rows[i], next)
			r.rows[i] = next
		}
	}
}

// noteRowChange records how a later edition changed an earlier row.
func (r *run) noteRowChange(prev, next sanctorumRow) {
	year := r.settings.Year
	if prev.Rank != next.Rank {
		r.note(Message{
			Code: CodeReranked, Event: next.Key, Date: next.date(year),
			Rank: next.Rank, OtherRank: prev.Rank,
			Before: prev.Rank.String(), After: next.Rank.String(), Source: next.source,
			Text: fmt.Sprintf("%s changes rank from %s to %s in the %s edition",
				next.Name, prev.Rank, next.Rank, next.source),
		})
	}
	if prev.Name != next.Name {
		r.note(Message{
			Code: CodeRenamed, Event: next.Key, Date: next.date(year), Rank: next.Rank,
			Before: prev.Name, After: next.Name, Source: next.source,
			Text: fmt.Sprintf("%q is renamed %q in the %s edition", prev.Name, next.Name, next.source),
		})
	}
	if prev.Month != next.Month || prev.Day != next.Day {
		r.note(Message{
			Code: CodeRedated, Event: next.Key, Date: prev.date(year), To: next.date(year), Rank: next.Rank,
			Before: calendar.FormatDate(prev.date(year)), After: calendar.FormatDate(next.date(year)), Source: next.source,
			Text: fmt.Sprintf("%s is moved from %s to %s in the %s edition",
				next.Name, calendar.FormatDate(prev.date(year)), calendar.FormatDate(next.date(year)), next.source),
		})
	}
}

// rowDecrees applies the setProperty decrees that target a Missal row
// before any row is placed, so the row is created once at its final rank
// and name.
func (r *run) rowDecrees() {
	for _, d := range r.ref.Decrees() {
		if d.Action != data.ActionSetProperty || !d.InEffect(r.settings.Year) {
			continue
		}
		i, ok := r.rowAt[d.Event.Key]
		if !ok {
			continue
		}
		row := &r.rows[i]
		switch d.Metadata.Property {
		case data.PropertyRank:
			before := row.Rank
			row.Rank = d.Event.Rank
			r.note(Message{
				Code: CodeReranked, Event: row.Key, Date: row.date(r.settings.Year),
				Rank: row.Rank, OtherRank: before,
				Before: before.String(), After: row.Rank.String(), Source: d.ID,
				Text: fmt.Sprintf("%s changes rank from %s to %s by decree %s", row.Name, before, row.Rank, d.ID),
			})
		case data.PropertyName:
			before := row.Name
			row.Name = d.Event.Name
			r.note(Message{
				Code: CodeRenamed, Event: row.Key, Date: row.date(r.settings.Year), Rank: row.Rank,
				Before: before, After: row.Name, Source: d.ID,
				Text: fmt.Sprintf("%q is renamed %q by decree %s", before, row.Name, d.ID),
			})
		}
		row.source = d.ID
	}
}

// rowsWhere returns the merged rows whose rank satisfies match, in
// edition order.
func (r *run) rowsWhere(match func(calendar.Rank) bool) []sanctorumRow {
	var out []sanctorumRow
	for _, row := range r.rows {
		if match(row.Rank) {
			out = append(out, row)
		}
	}
	return out
}

func (r *run) isRow(key string) bool {
	_, ok := r.rowAt[key]
	return ok
}
