package calendar

import (
	"fmt"
	"strings"
)

// Rank is the precedence grade of a celebration. Higher values win.
type Rank int

const (
	RankWeekday Rank = iota
	RankCommemoration
	RankOptionalMemorial
	RankMemorial
	RankFeast
	RankFeastOfTheLord
	RankSolemnity
	RankHigherSolemnity
)

var rankNames = [...]string{
	RankWeekday:          "WEEKDAY",
	RankCommemoration:    "COMMEMORATION",
	RankOptionalMemorial: "OPTIONAL_MEMORIAL",
	RankMemorial:         "MEMORIAL",
	RankFeast:            "FEAST",
	RankFeastOfTheLord:   "FEAST_OF_THE_LORD",
	RankSolemnity:        "SOLEMNITY",
	RankHigherSolemnity:  "HIGHER_SOLEMNITY",
}

// String returns the canonical upper-case name of the rank.
func (r Rank) String() string {
	if r < RankWeekday || r > RankHigherSolemnity {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// IsValid reports whether r is one of the eight defined ranks.
func (r Rank) IsValid() bool {
	return r >= RankWeekday && r <= RankHigherSolemnity
}

// ParseRank parses a canonical rank name, case-insensitively.
func ParseRank(s string) (Rank, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range rankNames {
		if n == name {
			return Rank(i), nil
		}
	}
	return RankWeekday, fmt.Errorf("unknown rank %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rank) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid rank %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rank) UnmarshalText(b []byte) error {
	parsed, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Color is a liturgical vestment color.
type Color string

const (
	ColorWhite  Color = "white"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorRose   Color = "rose"
)

// ValidColors returns all valid liturgical colors.
func ValidColors() []Color {
	return []Color{ColorWhite, ColorRed, ColorGreen, ColorPurple, ColorRose}
}

// IsValid checks if a color is valid.
func (c Color) IsValid() bool {
	for _, valid := range ValidColors() {
		if c == valid {
			return true
		}
	}
	return false
}

// EventType distinguishes fixed-date celebrations from moveable ones.
type EventType string

const (
	EventFixed  EventType = "fixed"
	EventMobile EventType = "mobile"
)

// Season represents a liturgical season.
type Season string

const (
	SeasonAdvent        Season = "ADVENT"
	SeasonChristmas     Season = "CHRISTMAS"
	SeasonLent          Season = "LENT"
	SeasonEasterTriduum Season = "EASTER_TRIDUUM"
	SeasonEaster        Season = "EASTER"
	SeasonOrdinaryTime  Season = "ORDINARY_TIME"
)

// ValidSeasons returns all liturgical seasons in calendar order.
func ValidSeasons() []Season {
	return []Season{
		SeasonAdvent,
		SeasonChristmas,
		SeasonLent,
		SeasonEasterTriduum,
		SeasonEaster,
		SeasonOrdinaryTime,
	}
}

// IsValid checks if a season is valid.
func (s Season) IsValid() bool {
	for _, valid := range ValidSeasons() {
		if s == valid {
			return true
		}
	}
	return false
}
