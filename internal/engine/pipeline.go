package engine

// phase is one step of the universal pipeline. The order of the phases
// encodes the table of liturgical days and must not change: a phase may
// read what earlier phases created, never what later ones will.
type phase struct {
	name  string
	apply func(*run)
}

var universalPhases = []phase{
	{"easter triduum", (*run).triduum},
	{"principal feasts", (*run).principalFeasts},
	{"season sundays", (*run).seasonSundays},
	{"solemnities", (*run).solemnities},
	{"feasts of the lord", (*run).feastsOfTheLord},
	{"ordinary sundays", (*run).ordinarySundays},
	{"feasts", (*run).feasts},
	{"privileged weekdays", (*run).privilegedWeekdays},
	{"memorials", (*run).memorials},
	{"optional memorials", (*run).optionalMemorials},
	{"weekdays", (*run).remainingWeekdays},
	{"saturday memorials", (*run).saturdayMemorials},
}

// universal builds the General Roman Calendar for the run's year.
func (r *run) universal() {
	r.mergeMissals()
	r.rowDecrees()

	for i, p := range universalPhases {
		before := r.index.Len()
		p.apply(r)
		r.logger.Debug("phase complete",
			"phase", i+1,
			"name", p.name,
			"added", r.index.Len()-before,
		)
	}
}
