package engine

import (
	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

func rankIs(want calendar.Rank) func(calendar.Rank) bool {
	return func(r calendar.Rank) bool { return r == want }
}

func rankAtLeast(min calendar.Rank) func(calendar.Rank) bool {
	return func(r calendar.Rank) bool { return r >= min }
}

// placeRows runs the merged Missal rows matching match through the
// creation policy.
func (r *run) placeRows(match func(calendar.Rank) bool) {
	year := r.settings.Year
	for _, row := range r.rowsWhere(match) {
		r.place(row.event(year))
	}
}

// solemnities is phase 4.
func (r *run) solemnities() {
	r.lordSolemnities()
	r.placeRows(rankAtLeast(calendar.RankSolemnity))
	r.decreesCreating(rankAtLeast(calendar.RankSolemnity))
}

// feastsOfTheLord is phase 5.
func (r *run) feastsOfTheLord() {
	r.lordFeasts()
	r.placeRows(rankIs(calendar.RankFeastOfTheLord))
	r.decreesCreating(rankIs(calendar.RankFeastOfTheLord))
}

// feasts is phase 7. Every Sunday already holds a solemnity-tier event
// by now, so the creation policy alone keeps feasts off Sundays.
func (r *run) feasts() {
	r.placeRows(rankIs(calendar.RankFeast))
	r.decreesCreating(rankIs(calendar.RankFeast))
}

// memorials is phase 9.
func (r *run) memorials() {
	rank := calendar.RankOptionalMemorial
	if r.settings.Year >= 1996 {
		rank = calendar.RankMemorial
	}
	heart := r.tempore("ImmaculateHeart", r.easterOffset(calendar.OffsetImmHeart), rank, white, calendar.EventMobile)
	heart.Commons = []string{"Blessed Virgin Mary"}
	r.place(heart)

	r.placeRows(rankIs(calendar.RankMemorial))
	r.decreesCreating(rankIs(calendar.RankMemorial))
}

// optionalMemorials is phase 10.
func (r *run) optionalMemorials() {
	r.placeRows(rankIs(calendar.RankOptionalMemorial))
	r.decreesCreating(rankIs(calendar.RankOptionalMemorial))
	r.doctorDecrees()
	r.propertyDecrees()
}
