// Package engine computes the liturgical calendar of one civil year: it
// runs the universal pipeline, layers regional calendars over it,
// resolves Vigil Masses and returns a finalized Calendar together with
// the audit trail of every decision taken.
package engine

import (
	"slices"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// Origin tells which layer created or last raised a celebration.
type Origin string

const (
	OriginUniversal Origin = "universal"
	OriginWider     Origin = "wider_region"
	OriginNational  Origin = "national"
	OriginDiocesan  Origin = "diocesan"
)

// LiturgicalEvent is one celebration on one date.
type LiturgicalEvent struct {
	ID          int                `json:"id"`
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Date        time.Time          `json:"date"`
	Rank        calendar.Rank      `json:"rank"`
	DisplayRank string             `json:"display_rank,omitempty"`
	Colors      []calendar.Color   `json:"colors"`
	Commons     []string           `json:"commons,omitempty"`
	Type        calendar.EventType `json:"type"`

	IsVigilMass  bool   `json:"is_vigil_mass,omitempty"`
	VigilFor     string `json:"vigil_for,omitempty"`
	HasVigilMass bool   `json:"has_vigil_mass,omitempty"`
	HasVespersI  bool   `json:"has_vespers_i,omitempty"`
	HasVespersII bool   `json:"has_vespers_ii,omitempty"`

	PsalterWeek int                `json:"psalter_week,omitempty"`
	Season      calendar.Season    `json:"season,omitempty"`
	YearCycle   calendar.YearCycle `json:"year_cycle,omitempty"`

	Origin Origin `json:"origin"`
	Source string `json:"source,omitempty"`
}

// Clone returns a deep copy of e.
func (e *LiturgicalEvent) Clone() *LiturgicalEvent {
	c := *e
	c.Colors = slices.Clone(e.Colors)
	c.Commons = slices.Clone(e.Commons)
	return &c
}

// IsProper reports whether the celebration has proper texts rather than
// texts from a Common.
func (e *LiturgicalEvent) IsProper() bool {
	return len(e.Commons) == 0
}

// Lord and Blessed Virgin Mary celebrations outside the Proprium de
// Tempore. They take precedence over other solemnities of equal rank when
// a Vigil Mass and a solemnity meet.
var lordOrMaryKeys = map[string]bool{
	"Presentation":         true,
	"Annunciation":         true,
	"Transfiguration":      true,
	"ExaltationCross":      true,
	"DedicationLateran":    true,
	"Assumption":           true,
	"ImmaculateConception": true,
	"NativityVirginMary":   true,
	"Visitation":           true,
	"MostHolyNameJesus":    true,
}

var temporeLordKeys = map[string]bool{
	"Christmas":     true,
	"MotherGod":     true,
	"Epiphany":      true,
	"BaptismLord":   true,
	"HolyFamily":    true,
	"Easter":        true,
	"Ascension":     true,
	"Pentecost":     true,
	"Trinity":       true,
	"CorpusChristi": true,
	"SacredHeart":   true,
	"ChristKing":    true,
}

// IsLordOrMary reports whether e celebrates the Lord or the Blessed
// Virgin Mary.
func (e *LiturgicalEvent) IsLordOrMary() bool {
	return lordOrMaryKeys[e.Key] || temporeLordKeys[e.Key]
}
