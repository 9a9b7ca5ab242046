package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Supported year range.
const (
	MinYear = 1970
	MaxYear = 9999
)

// ErrYearOutOfRange is returned for years outside [MinYear, MaxYear].
var ErrYearOutOfRange = errors.New("year out of range")

// EpiphanyMode selects the date of the Epiphany.
type EpiphanyMode string

const (
	EpiphanyJan6         EpiphanyMode = "JAN6"
	EpiphanySundayJan2_8 EpiphanyMode = "SUNDAY_JAN2_JAN8"
)

// ObservanceMode selects whether Ascension or Corpus Christi is kept on
// its Thursday or transferred to the following Sunday.
type ObservanceMode string

const (
	ObserveThursday ObservanceMode = "THURSDAY"
	ObserveSunday   ObservanceMode = "SUNDAY"
)

// Settings is the resolved, immutable configuration of one calendar
// computation. It is a value type: copy it, never share a pointer to it.
type Settings struct {
	Year             int            `json:"year"`
	Epiphany         EpiphanyMode   `json:"epiphany"`
	Ascension        ObservanceMode `json:"ascension"`
	CorpusChristi    ObservanceMode `json:"corpus_christi"`
	Locale           string         `json:"locale"`
	NationalCalendar string         `json:"national_calendar,omitempty"`
	DiocesanCalendar string         `json:"diocesan_calendar,omitempty"`
}

// DefaultSettings returns the General Roman Calendar settings for a year.
func DefaultSettings(year int) Settings {
	return Settings{
		Year:          year,
		Epiphany:      EpiphanyJan6,
		Ascension:     ObserveThursday,
		CorpusChristi: ObserveThursday,
		Locale:        "en",
	}
}

// Validate checks the year range and every enumerated field.
func (s Settings) Validate() error {
	var errs []error

	if s.Year < MinYear {
		errs = append(errs, fmt.Errorf("%w: %d is below minimum %d", ErrYearOutOfRange, s.Year, MinYear))
	} else if s.Year > MaxYear {
		errs = append(errs, fmt.Errorf("%w: %d is above maximum %d", ErrYearOutOfRange, s.Year, MaxYear))
	}

	switch s.Epiphany {
	case EpiphanyJan6, EpiphanySundayJan2_8:
	default:
		errs = append(errs, fmt.Errorf("epiphany must be one of JAN6, SUNDAY_JAN2_JAN8; got %q", s.Epiphany))
	}

	modes := []struct {
		name string
		mode ObservanceMode
	}{
		{"ascension", s.Ascension},
		{"corpus_christi", s.CorpusChristi},
	}
	for _, m := range modes {
		switch m.mode {
		case ObserveThursday, ObserveSunday:
		default:
			errs = append(errs, fmt.Errorf("%s must be one of THURSDAY, SUNDAY; got %q", m.name, m.mode))
		}
	}

	if s.Locale == "" {
		errs = append(errs, errors.New("locale is required"))
	}

	if s.DiocesanCalendar != "" && s.NationalCalendar == "" {
		errs = append(errs, errors.New("diocesan calendar requires a national calendar"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// String returns the canonical form used for cache keys and logs.
func (s Settings) String() string {
	return fmt.Sprintf("year=%d;epiphany=%s;ascension=%s;corpus_christi=%s;locale=%s;national=%s;diocese=%s",
		s.Year, s.Epiphany, s.Ascension, s.CorpusChristi,
		strings.ToLower(s.Locale),
		strings.ToUpper(s.NationalCalendar),
		strings.ToUpper(s.DiocesanCalendar),
	)
}

// CacheKey returns a stable hex digest of the canonical settings.
func (s Settings) CacheKey() string {
	sum := sha256.Sum256([]byte(s.String()))
	return hex.EncodeToString(sum[:])
}
