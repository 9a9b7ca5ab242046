package engine

import (
	"fmt"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// Key prefixes of generated weekdays. Weekday keys end in MMDD.
const (
	keyAdventWeekday    = "AdventWeekday"
	keyChristmasWeekday = "ChristmasWeekday"
	keyLentWeekday      = "LentWeekday"
	keyEasterWeekday    = "EasterWeekday"
	keyOrdWeekday       = "OrdWeekday"
	keyOrdSunday        = "OrdSunday"
	keySatMemBVM        = "SatMemBVM"
	vigilSuffix         = "_vigil"
)

// temporeKeys are the Proprium de Tempore names every locale must supply.
var temporeKeys = []string{
	"HolyThurs", "GoodFri", "EasterVigil", "Easter",
	"Christmas", "MotherGod", "Epiphany", "Christmas2", "Ascension", "Pentecost",
	"Advent1", "Advent2", "Advent3", "Advent4",
	"Lent1", "Lent2", "Lent3", "Lent4", "Lent5", "PalmSun",
	"Easter2", "Easter3", "Easter4", "Easter5", "Easter6", "Easter7",
	"AshWednesday", "MonHolyWeek", "TueHolyWeek", "WedHolyWeek",
	"MonOctaveEaster", "TueOctaveEaster", "WedOctaveEaster",
	"ThuOctaveEaster", "FriOctaveEaster", "SatOctaveEaster",
	"Trinity", "CorpusChristi", "SacredHeart", "ChristKing",
	"BaptismLord", "HolyFamily", "ImmaculateHeart", "SatMemBVM",
}

var (
	white        = []calendar.Color{calendar.ColorWhite}
	red          = []calendar.Color{calendar.ColorRed}
	green        = []calendar.Color{calendar.ColorGreen}
	purple       = []calendar.Color{calendar.ColorPurple}
	roseOrPurple = []calendar.Color{calendar.ColorRose, calendar.ColorPurple}
)

// tempore builds a Proprium de Tempore event named from the locale.
func (r *run) tempore(key string, date time.Time, rank calendar.Rank, colors []calendar.Color, typ calendar.EventType) *LiturgicalEvent {
	return &LiturgicalEvent{
		Key:    key,
		Name:   r.names[key],
		Date:   date,
		Rank:   rank,
		Colors: colors,
		Type:   typ,
	}
}

func (r *run) easterOffset(days int) time.Time {
	return r.anchors.Easter.AddDate(0, 0, days)
}

// triduum is phase 1.
func (r *run) triduum() {
	r.add(r.tempore("HolyThurs", r.anchors.HolyThursday, calendar.RankHigherSolemnity, white, calendar.EventMobile))
	r.add(r.tempore("GoodFri", r.easterOffset(calendar.OffsetGoodFriday), calendar.RankHigherSolemnity, red, calendar.EventMobile))
	r.add(r.tempore("EasterVigil", r.easterOffset(calendar.OffsetHolySaturday), calendar.RankHigherSolemnity, white, calendar.EventMobile))
	r.add(r.tempore("Easter", r.anchors.Easter, calendar.RankHigherSolemnity, white, calendar.EventMobile))
}

// principalFeasts is phase 2: Christmas, Mary Mother of God, Epiphany
// with the January weekdays of Christmas Time, Ascension, Pentecost.
func (r *run) principalFeasts() {
	a := r.anchors
	year := r.settings.Year

	r.add(r.tempore("Christmas", a.Christmas, calendar.RankHigherSolemnity, white, calendar.EventFixed))
	r.add(r.tempore("MotherGod", calendar.Date(year, time.January, 1), calendar.RankSolemnity, white, calendar.EventFixed))

	epiphanyType := calendar.EventFixed
	if r.settings.Epiphany == calendar.EpiphanySundayJan2_8 {
		epiphanyType = calendar.EventMobile
	}
	r.add(r.tempore("Epiphany", a.Epiphany, calendar.RankHigherSolemnity, white, epiphanyType))

	for d := calendar.Date(year, time.January, 2); d.Before(a.Baptism); d = d.AddDate(0, 0, 1) {
		if calendar.IsSunday(d) || r.index.InSolemnities(d) {
			continue
		}
		if e := r.weekday(d); e != nil && r.add(e) {
			r.index.MarkWeekdayEpiphany(e.Key)
		}
	}

	r.add(r.tempore("Ascension", a.Ascension, calendar.RankHigherSolemnity, white, calendar.EventMobile))
	r.add(r.tempore("Pentecost", a.Pentecost, calendar.RankHigherSolemnity, red, calendar.EventMobile))
}

// seasonSundays is phase 3: Sundays of Advent, Lent and Easter, Ash
// Wednesday, Holy Week and the Octave of Easter.
func (r *run) seasonSundays() {
	a := r.anchors

	for i := 0; i < 4; i++ {
		colors := purple
		if i == 2 {
			colors = roseOrPurple
		}
		r.addSundayCycle(r.tempore(fmt.Sprintf("Advent%d", i+1), a.Advent1.AddDate(0, 0, 7*i), calendar.RankHigherSolemnity, colors, calendar.EventMobile))
	}

	for i := 0; i < 5; i++ {
		colors := purple
		if i == 3 {
			colors = roseOrPurple
		}
		r.addSundayCycle(r.tempore(fmt.Sprintf("Lent%d", i+1), a.Lent1.AddDate(0, 0, 7*i), calendar.RankHigherSolemnity, colors, calendar.EventMobile))
	}
	r.addSundayCycle(r.tempore("PalmSun", a.PalmSunday, calendar.RankHigherSolemnity, red, calendar.EventMobile))

	for i := 2; i <= 7; i++ {
		e := r.tempore(fmt.Sprintf("Easter%d", i), a.Easter.AddDate(0, 0, 7*(i-1)), calendar.RankHigherSolemnity, white, calendar.EventMobile)
		if r.index.InSolemnities(e.Date) {
			// Ascension kept on the Seventh Sunday of Easter.
			other := r.index.WinningSolemnityAt(e.Date)
			r.note(Message{
				Code: CodeSundaySkipped, Event: e.Key, Other: other.Key, Date: e.Date,
				Rank: e.Rank, OtherRank: other.Rank,
				Text: fmt.Sprintf("%s is replaced by %s", e.Name, other.Name),
			})
			continue
		}
		r.addSundayCycle(e)
	}

	r.add(r.tempore("AshWednesday", a.AshWednesday, calendar.RankHigherSolemnity, purple, calendar.EventMobile))

	for i, key := range []string{"MonHolyWeek", "TueHolyWeek", "WedHolyWeek"} {
		r.add(r.tempore(key, a.PalmSunday.AddDate(0, 0, i+1), calendar.RankHigherSolemnity, purple, calendar.EventMobile))
	}
	for i, key := range []string{"MonOctaveEaster", "TueOctaveEaster", "WedOctaveEaster", "ThuOctaveEaster", "FriOctaveEaster", "SatOctaveEaster"} {
		r.add(r.tempore(key, a.Easter.AddDate(0, 0, i+1), calendar.RankHigherSolemnity, white, calendar.EventMobile))
	}
}

func (r *run) addSundayCycle(e *LiturgicalEvent) {
	if r.add(e) {
		r.index.MarkSundayCycle(e.Key)
	}
}

// lordSolemnities creates the mobile solemnities of the Lord that open
// phase 4.
func (r *run) lordSolemnities() {
	a := r.anchors
	r.place(r.tempore("Trinity", a.Trinity, calendar.RankSolemnity, white, calendar.EventMobile))
	r.place(r.tempore("CorpusChristi", a.CorpusChristi, calendar.RankSolemnity, white, calendar.EventMobile))
	r.place(r.tempore("SacredHeart", a.SacredHeart, calendar.RankSolemnity, white, calendar.EventMobile))
	r.place(r.tempore("ChristKing", a.ChristTheKing, calendar.RankSolemnity, white, calendar.EventMobile))
}

// lordFeasts creates the Baptism of the Lord and the Holy Family, the
// mobile part of phase 5.
func (r *run) lordFeasts() {
	r.place(r.tempore("BaptismLord", r.anchors.Baptism, calendar.RankFeastOfTheLord, white, calendar.EventMobile))
	r.place(r.tempore("HolyFamily", r.anchors.HolyFamily, calendar.RankFeastOfTheLord, white, calendar.EventMobile))
}

// ordinarySundays is phase 6: the Sundays of Christmas Time and of
// Ordinary Time. Sundays already taken by a higher celebration are
// skipped with a note.
func (r *run) ordinarySundays() {
	a := r.anchors
	year := r.settings.Year

	if r.settings.Epiphany == calendar.EpiphanyJan6 {
		if d := calendar.FindSundayBetween(year, 1, 2, 1, 5); d != nil {
			r.addSunday(r.tempore("Christmas2", *d, calendar.RankFeastOfTheLord, white, calendar.EventMobile))
		}
	}

	for d, week := a.OrdinarySunday2, 2; d.Before(a.AshWednesday); d, week = d.AddDate(0, 0, 7), week+1 {
		r.addSunday(r.ordinarySunday(d, week))
	}

	for d := a.Pentecost.AddDate(0, 0, 7); d.Before(a.ChristTheKing); d = d.AddDate(0, 0, 7) {
		week := 34 - calendar.DaysBetween(d, a.ChristTheKing)/7
		r.addSunday(r.ordinarySunday(d, week))
	}
}

func (r *run) ordinarySunday(d time.Time, week int) *LiturgicalEvent {
	return &LiturgicalEvent{
		Key:    fmt.Sprintf("%s%d", keyOrdSunday, week),
		Name:   r.loc.OrdinarySunday(week),
		Date:   d,
		Rank:   calendar.RankFeastOfTheLord,
		Colors: green,
		Type:   calendar.EventMobile,
	}
}

func (r *run) addSunday(e *LiturgicalEvent) {
	if other := r.index.WinningSolemnityAt(e.Date); other != nil {
		r.note(Message{
			Code: CodeSundaySkipped, Event: e.Key, Other: other.Key, Date: e.Date,
			Rank: e.Rank, OtherRank: other.Rank,
			Text: fmt.Sprintf("%s is replaced by %s (%s)", e.Name, other.Name, other.Rank),
		})
		return
	}
	r.add(e)
}
