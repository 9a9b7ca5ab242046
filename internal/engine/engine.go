package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/i18n"
)

// ErrUnknownCalendar is returned when the settings name a national or
// diocesan calendar that the reference data does not hold.
var ErrUnknownCalendar = errors.New("unknown regional calendar")

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Engine computes calendars from shared, read-only reference data. It
// holds no per-computation state and is safe for concurrent use.
type Engine struct {
	ref    *data.Reference
	logger *slog.Logger
}

// New creates an Engine. A nil logger discards output.
func New(ref *data.Reference, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{ref: ref, logger: logger}
}

// Reference returns the reference data the engine computes from.
func (e *Engine) Reference() *data.Reference {
	return e.ref
}

// run is the mutable state of one computation.
type run struct {
	settings calendar.Settings
	anchors  calendar.Anchors
	names    map[string]string
	loc      i18n.Localizer
	ref      *data.Reference
	logger   *slog.Logger

	index    *Index
	messages []Message
	rows     []sanctorumRow
	rowAt    map[string]int
}

// Resolve fills the settings left empty from the regional calendar
// defaults and validates the result.
func (e *Engine) Resolve(s calendar.Settings) (calendar.Settings, error) {
	resolved, err := e.ref.ResolveSettings(s)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrUnknownCalendar, err)
	}
	if err := resolved.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return resolved, nil
}

// Compute builds the calendar for s. Settings left empty are resolved
// first; see Resolve. Errors are fatal: an out-of-range year, an unknown
// regional calendar, or missing reference data.
func (e *Engine) Compute(s calendar.Settings) (*Calendar, error) {
	settings, err := e.Resolve(s)
	if err != nil {
		return nil, err
	}

	names, err := e.ref.TemporeNames(settings.Locale)
	if err != nil {
		return nil, err
	}
	for _, key := range temporeKeys {
		if names[key] == "" {
			return nil, fmt.Errorf("%w: locale %s has no name for %s", data.ErrMissingTempore, settings.Locale, key)
		}
	}

	chain, err := e.ref.Chain(settings.NationalCalendar, settings.DiocesanCalendar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCalendar, err)
	}

	r := &run{
		settings: settings,
		anchors:  calendar.NewAnchors(settings),
		names:    names,
		loc:      i18n.For(settings.Locale),
		ref:      e.ref,
		logger:   e.logger.With("year", settings.Year),
		index:    NewIndex(),
	}

	r.logger.Debug("computing calendar", "settings", settings.String())
	r.universal()
	for _, region := range chain {
		r.regional(region)
	}
	r.vigils()
	r.finalize()
	r.logger.Debug("calendar computed", "events", r.index.Len(), "messages", len(r.messages))

	return newCalendar(r), nil
}

// note appends msg to the audit trail.
func (r *run) note(msg Message) {
	msg.Year = r.settings.Year
	r.messages = append(r.messages, msg)
	r.logger.Debug(msg.Text,
		"code", msg.Code,
		"rule", msg.Rule,
		"event", msg.Event,
		"other", msg.Other,
		"date", calendar.FormatDate(msg.Date),
	)
}

// add inserts e, logging instead of failing on a duplicate key.
func (r *run) add(e *LiturgicalEvent) bool {
	if e.Origin == "" {
		e.Origin = OriginUniversal
	}
	if err := r.index.Add(e); err != nil {
		r.logger.Warn("event not added", "key", e.Key, "error", err)
		return false
	}
	return true
}
