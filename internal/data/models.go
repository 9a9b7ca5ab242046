// Package data holds the read-only reference data of the liturgical
// calendar: Proprium de Tempore names per locale, Proprium de Sanctis rows
// per Missal edition, Vatican decrees, and wider-region, national and
// diocesan calendars.
package data

import (
	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// SanctorumRow is one fixed-date celebration of a Proprium de Sanctis.
type SanctorumRow struct {
	Key         string           `yaml:"key"`
	Name        string           `yaml:"name"`
	Month       int              `yaml:"month"`
	Day         int              `yaml:"day"`
	Rank        calendar.Rank    `yaml:"rank"`
	DisplayRank string           `yaml:"display_rank,omitempty"`
	Colors      []calendar.Color `yaml:"color"`
	Commons     []string         `yaml:"common,omitempty"`
}

// MissalEdition is the Proprium de Sanctis of one Missal edition.
// Region is empty for editions of the Roman Missal itself and holds the
// national calendar id for national editions.
type MissalEdition struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Region    string         `yaml:"region,omitempty"`
	SinceYear int            `yaml:"since_year"`
	UntilYear int            `yaml:"until_year,omitempty"`
	Rows      []SanctorumRow `yaml:"rows"`
}

// InEffect reports whether the edition applies to year.
func (m MissalEdition) InEffect(year int) bool {
	return inWindow(year, m.SinceYear, m.UntilYear)
}

// Action is the operation a decree or regional directive performs.
type Action string

const (
	ActionCreateNew   Action = "createNew"
	ActionSetProperty Action = "setProperty"
	ActionMakeDoctor  Action = "makeDoctor"
	ActionMoveEvent   Action = "moveEvent"
	ActionMakePatron  Action = "makePatron"
)

// ValidActions returns all valid actions.
func ValidActions() []Action {
	return []Action{ActionCreateNew, ActionSetProperty, ActionMakeDoctor, ActionMoveEvent, ActionMakePatron}
}

// IsValid checks if an action is valid.
func (a Action) IsValid() bool {
	for _, valid := range ValidActions() {
		if a == valid {
			return true
		}
	}
	return false
}

// Property names accepted by setProperty.
const (
	PropertyName = "name"
	PropertyRank = "rank"
)

// EventSpec describes the celebration a directive creates or changes.
// Either Month/Day or Relative is set for createNew and moveEvent.
type EventSpec struct {
	Key      string           `yaml:"key"`
	Name     string           `yaml:"name,omitempty"`
	Month    int              `yaml:"month,omitempty"`
	Day      int              `yaml:"day,omitempty"`
	Relative string           `yaml:"relative,omitempty"`
	Rank     calendar.Rank    `yaml:"rank"`
	Colors   []calendar.Color `yaml:"color,omitempty"`
	Commons  []string         `yaml:"common,omitempty"`
}

// Metadata carries the directive's parameters and provenance.
type Metadata struct {
	Property string `yaml:"property,omitempty"`
	Suffix   string `yaml:"suffix,omitempty"`
	URL      string `yaml:"url,omitempty"`
}

// Directive is a dated instruction that changes the calendar: a Vatican
// decree or an entry of a regional calendar.
type Directive struct {
	ID        string    `yaml:"id"`
	Action    Action    `yaml:"action"`
	SinceYear int       `yaml:"since_year"`
	UntilYear int       `yaml:"until_year,omitempty"`
	Event     EventSpec `yaml:"liturgical_event"`
	Metadata  Metadata  `yaml:"metadata,omitempty"`
}

// InEffect reports whether the directive applies to year. UntilYear is
// exclusive; zero means open-ended.
func (d Directive) InEffect(year int) bool {
	return inWindow(year, d.SinceYear, d.UntilYear)
}

func inWindow(year, since, until int) bool {
	if year < since {
		return false
	}
	return until == 0 || year < until
}

// RegionKind orders the regional layers.
type RegionKind string

const (
	RegionWider    RegionKind = "wider_region"
	RegionNational RegionKind = "national"
	RegionDiocesan RegionKind = "diocesan"
)

// RegionalSettings are the observance defaults a national or diocesan
// calendar imposes; empty fields inherit from the parent.
type RegionalSettings struct {
	Epiphany      calendar.EpiphanyMode   `yaml:"epiphany,omitempty"`
	Ascension     calendar.ObservanceMode `yaml:"ascension,omitempty"`
	CorpusChristi calendar.ObservanceMode `yaml:"corpus_christi,omitempty"`
	Locale        string                  `yaml:"locale,omitempty"`
}

// RegionalCalendar is a wider-region, national or diocesan calendar.
type RegionalCalendar struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	Kind       RegionKind       `yaml:"kind"`
	Parent     string           `yaml:"parent,omitempty"`
	Settings   RegionalSettings `yaml:"settings,omitempty"`
	Missals    []MissalEdition  `yaml:"missals,omitempty"`
	Directives []Directive      `yaml:"directives"`
}
