package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

func ev(key string, d time.Time, rank calendar.Rank) *LiturgicalEvent {
	return &LiturgicalEvent{Key: key, Name: key, Date: d, Rank: rank, Colors: white, Type: calendar.EventFixed}
}

func Test_Index_Add(t *testing.T) {
	ix := NewIndex()
	d := date(2024, time.March, 19)

	require.NoError(t, ix.Add(ev("StJoseph", d, calendar.RankSolemnity)))
	require.NoError(t, ix.Add(ev("LentWeekday0319", d, calendar.RankWeekday)))

	t.Run("Should assign sequential ids", func(t *testing.T) {
		a, _ := ix.Get("StJoseph")
		b, _ := ix.Get("LentWeekday0319")
		assert.Equal(t, 1, a.ID)
		assert.Equal(t, 2, b.ID)
	})

	t.Run("Should file events by tier", func(t *testing.T) {
		assert.True(t, ix.InSolemnities(d))
		assert.False(t, ix.InFeasts(d))
		assert.Equal(t, "StJoseph", ix.WinnerAt(d).Key)
		assert.Len(t, ix.FindByDate(d), 2)
	})

	t.Run("Should reject a duplicate key", func(t *testing.T) {
		err := ix.Add(ev("StJoseph", d.AddDate(0, 0, 1), calendar.RankSolemnity))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateKey))
		assert.Equal(t, 2, ix.Len())
	})

	t.Run("Should truncate the date to midnight", func(t *testing.T) {
		require.NoError(t, ix.Add(ev("Late", time.Date(2024, time.March, 20, 18, 30, 0, 0, time.UTC), calendar.RankMemorial)))
		e, _ := ix.Get("Late")
		assert.Equal(t, date(2024, time.March, 20), e.Date)
		assert.True(t, ix.InMemorials(date(2024, time.March, 20)))
	})

	t.Run("Should keep Vigil Masses out of the tiers", func(t *testing.T) {
		v := ev("Annunciation_vigil", date(2024, time.March, 24), calendar.RankSolemnity)
		v.IsVigilMass = true
		require.NoError(t, ix.Add(v))
		assert.False(t, ix.InSolemnities(v.Date))
		assert.Nil(t, ix.WinnerAt(v.Date))
	})

	t.Run("Should clear the display rank of a higher solemnity", func(t *testing.T) {
		e := ev("Christmas", date(2024, time.December, 25), calendar.RankHigherSolemnity)
		e.DisplayRank = "SOLEMNITY"
		require.NoError(t, ix.Add(e))
		assert.Empty(t, e.DisplayRank)
	})
}

func Test_Index_Remove(t *testing.T) {
	ix := NewIndex()
	d := date(2024, time.December, 18)
	require.NoError(t, ix.Add(ev("AdventWeekday1218", d, calendar.RankWeekday)))
	require.NoError(t, ix.Add(ev("Feast", d, calendar.RankFeast)))
	ix.MarkWeekdayAdventChristmasLent("AdventWeekday1218")
	require.True(t, ix.InWeekdaysAdventChristmasLent(d))

	ix.Remove("AdventWeekday1218")
	ix.Remove("Feast")
	ix.Remove("NotThere")

	assert.Zero(t, ix.Len())
	assert.False(t, ix.Has("Feast"))
	assert.Empty(t, ix.FindByDate(d))
	assert.False(t, ix.InFeasts(d))
	assert.False(t, ix.InWeekdaysAdventChristmasLent(d))
	assert.Empty(t, ix.byDate)

	t.Run("Should not lose a tier entry to a second event on the day", func(t *testing.T) {
		ix := NewIndex()
		d := date(2024, time.July, 10)
		require.NoError(t, ix.Add(ev("A", d, calendar.RankFeast)))

		err := ix.Add(ev("B", d, calendar.RankFeast))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTierOccupied))
		assert.False(t, ix.Has("B"))
		assert.Equal(t, 1, ix.Len())

		ix.Remove("B")

		assert.True(t, ix.Has("A"))
		assert.True(t, ix.InFeasts(d))
		assert.Equal(t, "A", ix.WinnerAt(d).Key)
	})

	t.Run("Should free the tier entry for the next event", func(t *testing.T) {
		ix := NewIndex()
		d := date(2024, time.July, 10)
		require.NoError(t, ix.Add(ev("A", d, calendar.RankFeast)))
		ix.Remove("A")

		require.NoError(t, ix.Add(ev("B", d, calendar.RankFeast)))
		assert.Equal(t, "B", ix.WinnerAt(d).Key)
	})
}

func Test_Index_SetRank(t *testing.T) {
	tests := []struct {
		name          string
		from, to      calendar.Rank
		wantSolemnity bool
		wantFeast     bool
		wantMemorial  bool
	}{
		{"Should move a memorial up to the feasts", calendar.RankMemorial, calendar.RankFeast, false, true, false},
		{"Should move a feast up to the solemnities", calendar.RankFeast, calendar.RankSolemnity, true, false, false},
		{"Should drop a demoted memorial from the tiers", calendar.RankMemorial, calendar.RankOptionalMemorial, false, false, false},
		{"Should keep the tier within the solemnity band", calendar.RankFeastOfTheLord, calendar.RankSolemnity, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := NewIndex()
			d := date(2024, time.July, 11)
			require.NoError(t, ix.Add(ev("StBenedict", d, tt.from)))

			ix.SetRank("StBenedict", tt.to)

			e, _ := ix.Get("StBenedict")
			assert.Equal(t, tt.to, e.Rank)
			assert.Equal(t, tt.wantSolemnity, ix.InSolemnities(d))
			assert.Equal(t, tt.wantFeast, ix.InFeasts(d))
			assert.Equal(t, tt.wantMemorial, ix.InMemorials(d))
		})
	}
}

func Test_Index_MoveDate(t *testing.T) {
	ix := NewIndex()
	from := date(2022, time.June, 24)
	to := date(2022, time.June, 23)
	require.NoError(t, ix.Add(ev("NativityJohnBaptist", from, calendar.RankSolemnity)))
	require.NoError(t, ix.Add(ev("Sunday", date(2022, time.June, 26), calendar.RankHigherSolemnity)))
	ix.MarkSundayCycle("Sunday")

	ix.MoveDate("NativityJohnBaptist", to)
	ix.MoveDate("Sunday", date(2022, time.June, 27))

	e, _ := ix.Get("NativityJohnBaptist")
	assert.Equal(t, to, e.Date)
	assert.False(t, ix.InSolemnities(from))
	assert.True(t, ix.InSolemnities(to))
	assert.Empty(t, ix.FindByDate(from))
	assert.False(t, ix.IsSundayCycleDate(date(2022, time.June, 26)))
	assert.False(t, ix.IsSundayCycleDate(date(2022, time.June, 27)))
}

func Test_Index_SortForOutput(t *testing.T) {
	ix := NewIndex()
	d := date(2024, time.January, 20)
	require.NoError(t, ix.Add(ev("Later", d.AddDate(0, 0, 1), calendar.RankWeekday)))
	require.NoError(t, ix.Add(ev("OrdWeekday0120", d, calendar.RankWeekday)))
	require.NoError(t, ix.Add(ev("StSebastian", d, calendar.RankOptionalMemorial)))
	require.NoError(t, ix.Add(ev("StFabian", d, calendar.RankOptionalMemorial)))

	var keys []string
	for _, e := range ix.SortForOutput() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"OrdWeekday0120", "StSebastian", "StFabian", "Later"}, keys)

	keys = keys[:0]
	for _, e := range ix.Events() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"Later", "OrdWeekday0120", "StSebastian", "StFabian"}, keys)
}
