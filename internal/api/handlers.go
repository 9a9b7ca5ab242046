package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/config"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/database"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
	"github.com/zapponejosh/liturgical-calendar/internal/ical"
	"github.com/zapponejosh/liturgical-calendar/internal/logger"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	engine *engine.Engine
	cache  *database.DB // nil when caching is disabled
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance. cache may be nil.
func NewHandlers(eng *engine.Engine, cache *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		engine: eng,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// log returns the handler logger tagged with the request ID.
func (h *Handlers) log(ctx context.Context) *slog.Logger {
	if id := logger.RequestID(ctx); id != "" {
		return h.logger.With(slog.String("request_id", id))
	}
	return h.logger
}

// =============================================================================
// Response payloads
// =============================================================================

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status     string               `json:"status"`
	Cache      string               `json:"cache"`
	CacheStats *database.CacheStats `json:"cache_stats,omitempty"`
}

// CalendarInfo describes one regional calendar.
type CalendarInfo struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Kind          data.RegionKind         `json:"kind"`
	Parent        string                  `json:"parent,omitempty"`
	Epiphany      calendar.EpiphanyMode   `json:"epiphany,omitempty"`
	Ascension     calendar.ObservanceMode `json:"ascension,omitempty"`
	CorpusChristi calendar.ObservanceMode `json:"corpus_christi,omitempty"`
	Locale        string                  `json:"locale,omitempty"`
}

// CalendarView is a filtered calendar.
type CalendarView struct {
	Settings calendar.Settings         `json:"settings"`
	KeyDates engine.KeyDates           `json:"key_dates"`
	Events   []*engine.LiturgicalEvent `json:"events"`
}

// DateResponse is the payload of GET /api/v1/calendar/{year}/date/{date}.
type DateResponse struct {
	Date      string                    `json:"date"`
	Principal *engine.LiturgicalEvent   `json:"principal"`
	Events    []*engine.LiturgicalEvent `json:"events"`
}

// =============================================================================
// Handlers
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := HealthResponse{Status: "healthy", Cache: "disabled"}
	if h.cache != nil {
		err := h.cache.Health(ctx)
		if err == nil {
			resp.CacheStats, err = h.cache.GetCacheStats(ctx)
		}
		if err != nil {
			h.log(ctx).Warn("health check failed", slog.Any("error", err))
			WriteError(w, http.StatusServiceUnavailable, "Cache unhealthy", CodeUnhealthy)
			return
		}
		resp.Cache = "enabled"
	}

	WriteSuccess(w, resp)
}

// ListCalendars handles GET /api/v1/calendars
func (h *Handlers) ListCalendars(w http.ResponseWriter, r *http.Request) {
	regions := h.engine.Reference().Regions()

	out := make([]CalendarInfo, 0, len(regions))
	for _, region := range regions {
		out = append(out, CalendarInfo{
			ID:            region.ID,
			Name:          region.Name,
			Kind:          region.Kind,
			Parent:        region.Parent,
			Epiphany:      region.Settings.Epiphany,
			Ascension:     region.Settings.Ascension,
			CorpusChristi: region.Settings.CorpusChristi,
			Locale:        region.Settings.Locale,
		})
	}

	WriteSuccess(w, out)
}

// GetCalendar handles GET /api/v1/calendar/{year}?view=all|solemnities|feasts
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFor(w, r)
	if !ok {
		return
	}

	view := CalendarView{Settings: cal.Settings(), KeyDates: cal.KeyDates()}
	switch r.URL.Query().Get("view") {
	case "", "all":
		WriteSuccess(w, cal)
		return
	case "solemnities":
		view.Events = cal.Solemnities()
	case "feasts":
		view.Events = cal.FeastsAndMemorials()
	default:
		WriteBadRequest(w, "view must be one of: all, solemnities, feasts")
		return
	}

	WriteSuccess(w, view)
}

// GetCalendarDate handles GET /api/v1/calendar/{year}/date/{YYYY-MM-DD}
func (h *Handlers) GetCalendarDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDateString(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	cal, ok := h.calendarFor(w, r)
	if !ok {
		return
	}
	if date.Year() != cal.Settings().Year {
		WriteBadRequest(w, fmt.Sprintf("Date %s is outside year %d", dateStr, cal.Settings().Year))
		return
	}

	WriteSuccess(w, DateResponse{
		Date:      calendar.FormatDate(date),
		Principal: cal.Principal(date),
		Events:    cal.On(date),
	})
}

// GetCalendarICS handles GET /api/v1/calendar/{year}/ics
func (h *Handlers) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFor(w, r)
	if !ok {
		return
	}

	opts := ical.Options{
		Stamp:      h.now(),
		SkipVigils: r.URL.Query().Get("vigils") == "false",
	}

	s := cal.Settings()
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="liturgical-%d.ics"`, s.Year))
	if err := ical.Write(w, cal, opts); err != nil {
		h.log(r.Context()).Error("failed to write ics", slog.Any("error", err))
	}
}

// =============================================================================
// Calendar resolution
// =============================================================================

// settingsFromRequest builds the requested settings from the {year} path
// parameter and the query string. Fields left empty are filled later from
// the regional calendar defaults.
func (h *Handlers) settingsFromRequest(r *http.Request) (calendar.Settings, error) {
	var s calendar.Settings

	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return s, fmt.Errorf("invalid year %q", yearStr)
	}
	s.Year = year

	q := r.URL.Query()
	s.Epiphany = calendar.EpiphanyMode(strings.ToUpper(q.Get("epiphany")))
	s.Ascension = calendar.ObservanceMode(strings.ToUpper(q.Get("ascension")))
	s.CorpusChristi = calendar.ObservanceMode(strings.ToUpper(q.Get("corpus_christi")))
	s.Locale = strings.ToLower(q.Get("locale"))
	s.NationalCalendar = strings.ToUpper(q.Get("national"))
	s.DiocesanCalendar = strings.ToUpper(q.Get("diocese"))

	// A regional calendar brings its own language.
	if s.Locale == "" && s.NationalCalendar == "" {
		s.Locale = h.cfg.DefaultLocale
	}
	return s, nil
}

// calendarFor resolves the request settings and returns the calendar,
// writing the error response itself when it cannot.
func (h *Handlers) calendarFor(w http.ResponseWriter, r *http.Request) (*engine.Calendar, bool) {
	ctx := r.Context()

	requested, err := h.settingsFromRequest(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil, false
	}

	settings, err := h.engine.Resolve(requested)
	if err != nil {
		h.writeCalendarError(w, err)
		return nil, false
	}

	cal, err := h.computeCached(ctx, settings)
	if err != nil {
		h.log(ctx).Error("failed to compute calendar",
			slog.String("settings", settings.String()),
			slog.Any("error", err))
		h.writeCalendarError(w, err)
		return nil, false
	}
	return cal, true
}

// computeCached returns the calendar for resolved settings from the cache
// when present, computing and storing it otherwise. Cache failures are
// logged and never fail the request.
func (h *Handlers) computeCached(ctx context.Context, s calendar.Settings) (*engine.Calendar, error) {
	if h.cache == nil {
		return h.engine.Compute(s)
	}

	log := h.log(ctx)
	key := s.CacheKey()
	epoch := database.Epoch(h.now())

	cached, err := h.cache.GetCalendar(ctx, key, epoch)
	switch {
	case err == nil:
		var cal engine.Calendar
		decodeErr := json.Unmarshal(cached.Payload, &cal)
		if decodeErr == nil {
			log.Debug("calendar cache hit", slog.String("key", key), slog.Int("hits", cached.Hits))
			return &cal, nil
		}
		log.Warn("discarding unreadable cache entry", slog.String("key", key), slog.Any("error", decodeErr))
		if err := h.cache.DeleteCalendar(ctx, key); err != nil {
			log.Warn("calendar cache delete failed", slog.Any("error", err))
		}
	case !database.IsNotFound(err):
		log.Warn("calendar cache read failed", slog.Any("error", err))
	}

	cal, err := h.engine.Compute(s)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cal)
	if err != nil {
		log.Warn("calendar not cached", slog.Any("error", err))
		return cal, nil
	}
	if err := h.cache.PutCalendar(ctx, &database.CachedCalendar{
		Key:      key,
		Epoch:    epoch,
		Settings: s.String(),
		Year:     s.Year,
		Payload:  payload,
	}); err != nil {
		log.Warn("calendar cache write failed", slog.Any("error", err))
	}
	return cal, nil
}

// writeCalendarError maps engine errors to responses.
func (h *Handlers) writeCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrYearOutOfRange):
		WriteBadRequest(w, fmt.Sprintf("Year must be between %d and %d", calendar.MinYear, calendar.MaxYear), CodeYearOutOfRange)
	case errors.Is(err, engine.ErrUnknownCalendar):
		WriteNotFound(w, err.Error(), CodeUnknownCalendar)
	case errors.Is(err, data.ErrMissingTempore):
		WriteBadRequest(w, err.Error(), CodeUnsupportedLocale)
	case errors.Is(err, engine.ErrInvalidSettings):
		WriteBadRequest(w, err.Error())
	default:
		WriteInternalError(w, "Failed to compute calendar")
	}
}
