package engine

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

var (
	// ErrDuplicateKey is returned by Index.Add when the key is already held.
	ErrDuplicateKey = errors.New("duplicate event key")
	// ErrTierOccupied is returned by Index.Add when another event already
	// holds the rank index of the day.
	ErrTierOccupied = errors.New("rank index occupied")
)

// tier is the precedence band an event is indexed under.
type tier int

const (
	tierNone tier = iota
	tierMemorial
	tierFeast
	tierSolemnity
)

func tierOf(r calendar.Rank) tier {
	switch {
	case r >= calendar.RankFeastOfTheLord:
		return tierSolemnity
	case r == calendar.RankFeast:
		return tierFeast
	case r == calendar.RankMemorial:
		return tierMemorial
	default:
		return tierNone
	}
}

// Index owns every event of one computation and keeps the derived
// lookup tables consistent with them. Dates are keyed by
// calendar.DayKey. An Index belongs to a single run and is not safe for
// concurrent use.
type Index struct {
	events map[string]*LiturgicalEvent
	nextID int

	byDate      map[int][]string
	solemnities map[int]string
	feasts      map[int]string
	memorials   map[int]string

	weekdaysAdventChristmasLent map[int]string
	weekdaysEpiphany            map[int]string
	sundayCycleDates            map[int]string
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		events:                      make(map[string]*LiturgicalEvent),
		byDate:                      make(map[int][]string),
		solemnities:                 make(map[int]string),
		feasts:                      make(map[int]string),
		memorials:                   make(map[int]string),
		weekdaysAdventChristmasLent: make(map[int]string),
		weekdaysEpiphany:            make(map[int]string),
		sundayCycleDates:            make(map[int]string),
	}
}

func (ix *Index) tierMap(t tier) map[int]string {
	switch t {
	case tierSolemnity:
		return ix.solemnities
	case tierFeast:
		return ix.feasts
	case tierMemorial:
		return ix.memorials
	default:
		return nil
	}
}

// Add inserts e and assigns its sequential id. Vigil Masses are kept out
// of the rank indices; they never win their date. A day holds at most one
// event per rank index: callers settle coincidences before adding.
func (ix *Index) Add(e *LiturgicalEvent) error {
	if _, ok := ix.events[e.Key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key)
	}
	e.Date = calendar.Truncate(e.Date)
	day := calendar.DayKey(e.Date)

	var tm map[int]string
	if !e.IsVigilMass {
		tm = ix.tierMap(tierOf(e.Rank))
	}
	if held, ok := tm[day]; ok {
		return fmt.Errorf("%w: %s already holds %s", ErrTierOccupied, held, calendar.FormatDate(e.Date))
	}

	if e.Rank == calendar.RankHigherSolemnity {
		e.DisplayRank = ""
	}
	ix.nextID++
	e.ID = ix.nextID

	ix.events[e.Key] = e
	ix.byDate[day] = append(ix.byDate[day], e.Key)
	if tm != nil {
		tm[day] = e.Key
	}
	return nil
}

// Remove deletes key from the primary map and from every derived index.
func (ix *Index) Remove(key string) {
	e, ok := ix.events[key]
	if !ok {
		return
	}
	delete(ix.events, key)

	day := calendar.DayKey(e.Date)
	ix.unlinkDate(day, key)
	for _, m := range []map[int]string{
		ix.solemnities, ix.feasts, ix.memorials,
		ix.weekdaysAdventChristmasLent, ix.weekdaysEpiphany, ix.sundayCycleDates,
	} {
		if m[day] == key {
			delete(m, day)
		}
	}
}

func (ix *Index) unlinkDate(day int, key string) {
	keys := ix.byDate[day]
	if i := slices.Index(keys, key); i >= 0 {
		keys = slices.Delete(keys, i, i+1)
	}
	if len(keys) == 0 {
		delete(ix.byDate, day)
		return
	}
	ix.byDate[day] = keys
}

// MoveDate relocates key to date. Rank-index membership is kept; the
// date-specific weekday and Sunday-cycle entries are dropped.
func (ix *Index) MoveDate(key string, date time.Time) {
	e, ok := ix.events[key]
	if !ok {
		return
	}
	from := calendar.DayKey(e.Date)
	to := calendar.DayKey(date)
	e.Date = calendar.Truncate(date)
	if from == to {
		return
	}

	ix.unlinkDate(from, key)
	ix.byDate[to] = append(ix.byDate[to], key)

	if m := ix.tierMap(tierOf(e.Rank)); m != nil && !e.IsVigilMass && m[from] == key {
		delete(m, from)
		m[to] = key
	}
	for _, m := range []map[int]string{ix.weekdaysAdventChristmasLent, ix.weekdaysEpiphany, ix.sundayCycleDates} {
		if m[from] == key {
			delete(m, from)
		}
	}
}

// SetRank changes the rank of key and migrates it between the rank
// indices when its tier changes.
func (ix *Index) SetRank(key string, rank calendar.Rank) {
	e, ok := ix.events[key]
	if !ok {
		return
	}
	before, after := tierOf(e.Rank), tierOf(rank)
	e.Rank = rank
	if rank == calendar.RankHigherSolemnity {
		e.DisplayRank = ""
	}
	if before == after || e.IsVigilMass {
		return
	}
	day := calendar.DayKey(e.Date)
	if m := ix.tierMap(before); m != nil && m[day] == key {
		delete(m, day)
	}
	if m := ix.tierMap(after); m != nil {
		m[day] = key
	}
}

// Rename changes the name of key.
func (ix *Index) Rename(key, name string) {
	if e, ok := ix.events[key]; ok {
		e.Name = name
	}
}

// SetDisplayRank overrides the rank label shown for key.
func (ix *Index) SetDisplayRank(key, label string) {
	if e, ok := ix.events[key]; ok {
		e.DisplayRank = label
	}
}

// MarkWeekdayAdventChristmasLent records key as a privileged weekday.
func (ix *Index) MarkWeekdayAdventChristmasLent(key string) {
	if e, ok := ix.events[key]; ok {
		ix.weekdaysAdventChristmasLent[calendar.DayKey(e.Date)] = key
	}
}

// MarkWeekdayEpiphany records key as a Christmas Time weekday of January.
func (ix *Index) MarkWeekdayEpiphany(key string) {
	if e, ok := ix.events[key]; ok {
		ix.weekdaysEpiphany[calendar.DayKey(e.Date)] = key
	}
}

// MarkSundayCycle records key as a Sunday of Advent, Lent or Easter.
func (ix *Index) MarkSundayCycle(key string) {
	if e, ok := ix.events[key]; ok {
		ix.sundayCycleDates[calendar.DayKey(e.Date)] = key
	}
}

// Get returns the event held under key.
func (ix *Index) Get(key string) (*LiturgicalEvent, bool) {
	e, ok := ix.events[key]
	return e, ok
}

// Has reports whether key is held.
func (ix *Index) Has(key string) bool {
	_, ok := ix.events[key]
	return ok
}

// Len returns the number of events.
func (ix *Index) Len() int {
	return len(ix.events)
}

// FindByDate returns the events on date in insertion order.
func (ix *Index) FindByDate(date time.Time) []*LiturgicalEvent {
	keys := ix.byDate[calendar.DayKey(date)]
	out := make([]*LiturgicalEvent, 0, len(keys))
	for _, k := range keys {
		out = append(out, ix.events[k])
	}
	return out
}

func (ix *Index) at(m map[int]string, date time.Time) *LiturgicalEvent {
	if key, ok := m[calendar.DayKey(date)]; ok {
		return ix.events[key]
	}
	return nil
}

// WinningSolemnityAt returns the solemnity-tier event on date, or nil.
func (ix *Index) WinningSolemnityAt(date time.Time) *LiturgicalEvent {
	return ix.at(ix.solemnities, date)
}

// WinningFeastOrMemorialAt returns the feast on date, else the
// obligatory memorial on date, or nil.
func (ix *Index) WinningFeastOrMemorialAt(date time.Time) *LiturgicalEvent {
	if e := ix.at(ix.feasts, date); e != nil {
		return e
	}
	return ix.at(ix.memorials, date)
}

// WinnerAt returns the highest-tier indexed event on date, or nil.
func (ix *Index) WinnerAt(date time.Time) *LiturgicalEvent {
	if e := ix.WinningSolemnityAt(date); e != nil {
		return e
	}
	return ix.WinningFeastOrMemorialAt(date)
}

func (ix *Index) InSolemnities(date time.Time) bool {
	_, ok := ix.solemnities[calendar.DayKey(date)]
	return ok
}

func (ix *Index) InFeasts(date time.Time) bool {
	_, ok := ix.feasts[calendar.DayKey(date)]
	return ok
}

func (ix *Index) InMemorials(date time.Time) bool {
	_, ok := ix.memorials[calendar.DayKey(date)]
	return ok
}

func (ix *Index) InFeastsOrMemorials(date time.Time) bool {
	return ix.InFeasts(date) || ix.InMemorials(date)
}

func (ix *Index) InSolemnitiesOrFeasts(date time.Time) bool {
	return ix.InSolemnities(date) || ix.InFeasts(date)
}

func (ix *Index) InSolemnitiesFeastsOrMemorials(date time.Time) bool {
	return ix.InSolemnities(date) || ix.InFeastsOrMemorials(date)
}

func (ix *Index) NotInSolemnities(date time.Time) bool {
	return !ix.InSolemnities(date)
}

func (ix *Index) NotInFeastsOrMemorials(date time.Time) bool {
	return !ix.InFeastsOrMemorials(date)
}

func (ix *Index) NotInSolemnitiesOrFeasts(date time.Time) bool {
	return !ix.InSolemnitiesOrFeasts(date)
}

func (ix *Index) NotInSolemnitiesFeastsOrMemorials(date time.Time) bool {
	return !ix.InSolemnitiesFeastsOrMemorials(date)
}

// InWeekdaysAdventChristmasLent reports whether date is a privileged
// weekday: December 17-24, the Christmas Octave or a weekday of Lent.
func (ix *Index) InWeekdaysAdventChristmasLent(date time.Time) bool {
	_, ok := ix.weekdaysAdventChristmasLent[calendar.DayKey(date)]
	return ok
}

// InWeekdaysEpiphany reports whether date is a January weekday of
// Christmas Time.
func (ix *Index) InWeekdaysEpiphany(date time.Time) bool {
	_, ok := ix.weekdaysEpiphany[calendar.DayKey(date)]
	return ok
}

// IsSundayCycleDate reports whether date is a Sunday of Advent, Lent or
// Easter.
func (ix *Index) IsSundayCycleDate(date time.Time) bool {
	_, ok := ix.sundayCycleDates[calendar.DayKey(date)]
	return ok
}

// Events returns all events in insertion order.
func (ix *Index) Events() []*LiturgicalEvent {
	out := make([]*LiturgicalEvent, 0, len(ix.events))
	for _, e := range ix.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SortForOutput returns all events ordered by date, then rank ascending,
// then insertion order.
func (ix *Index) SortForOutput() []*LiturgicalEvent {
	out := ix.Events()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.ID < b.ID
	})
	return out
}
