package engine

import (
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// relativeDates resolves the named mobile dates that decrees and
// regional directives may use instead of a month and day.
var relativeDates = map[string]func(a calendar.Anchors) time.Time{
	"MondayAfterPentecost": func(a calendar.Anchors) time.Time {
		return a.Pentecost.AddDate(0, 0, 1)
	},
	"ThursdayAfterPentecost": func(a calendar.Anchors) time.Time {
		return a.Pentecost.AddDate(0, 0, 4)
	},
	"SaturdayAfterSacredHeart": func(a calendar.Anchors) time.Time {
		return a.SacredHeart.AddDate(0, 0, 1)
	},
	"FourthThursdayNovember": func(a calendar.Anchors) time.Time {
		d := calendar.Date(a.Year, time.November, 1)
		for d.Weekday() != time.Thursday {
			d = d.AddDate(0, 0, 1)
		}
		return d.AddDate(0, 0, 21)
	},
}

// relativeDate resolves name for the run's year.
func (r *run) relativeDate(name string) (time.Time, bool) {
	resolve, ok := relativeDates[name]
	if !ok {
		return time.Time{}, false
	}
	return resolve(r.anchors), true
}
