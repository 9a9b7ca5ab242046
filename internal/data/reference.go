package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

// BaseMissal is the edition every computation requires.
const BaseMissal = "1970"

var (
	// ErrMissingTempore is returned when no Proprium de Tempore exists for
	// the requested locale.
	ErrMissingTempore = errors.New("proprium de tempore not available")

	// ErrInvalidReference is returned when mandatory reference data is
	// absent or structurally invalid.
	ErrInvalidReference = errors.New("invalid reference data")
)

//go:embed tempore/*.yaml missals/*.yaml decrees.yaml regions/*.yaml
var embedded embed.FS

// Reference is the full set of reference data. It is immutable once
// loaded and safe to share between concurrent computations.
type Reference struct {
	tempore map[string]map[string]string
	missals []MissalEdition
	decrees []Directive
	regions map[string]*RegionalCalendar
}

var (
	defaultOnce sync.Once
	defaultRef  *Reference
	defaultErr  error
)

// Default returns the embedded reference data, loading it on first use.
func Default() (*Reference, error) {
	defaultOnce.Do(func() {
		defaultRef, defaultErr = Load(embedded)
	})
	return defaultRef, defaultErr
}

// Load reads reference data from fsys, which must contain the layout of
// the embedded data: tempore/<locale>.yaml, missals/*.yaml, decrees.yaml
// and regions/*.yaml.
func Load(fsys fs.FS) (*Reference, error) {
	ref := &Reference{
		tempore: make(map[string]map[string]string),
		regions: make(map[string]*RegionalCalendar),
	}

	// Tempore names, one file per locale
	temporeFiles, err := fs.Glob(fsys, "tempore/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list tempore files: %w", err)
	}
	for _, file := range temporeFiles {
		names := make(map[string]string)
		if err := decodeFile(fsys, file, &names); err != nil {
			return nil, err
		}
		locale := strings.TrimSuffix(path.Base(file), ".yaml")
		ref.tempore[strings.ToLower(locale)] = names
	}

	// Missal editions, kept in chronological order
	missalFiles, err := fs.Glob(fsys, "missals/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list missal files: %w", err)
	}
	for _, file := range missalFiles {
		var edition MissalEdition
		if err := decodeFile(fsys, file, &edition); err != nil {
			return nil, err
		}
		ref.missals = append(ref.missals, edition)
	}
	sortEditions(ref.missals)

	// Decrees
	var decrees struct {
		Decrees []Directive `yaml:"decrees"`
	}
	if err := decodeFile(fsys, "decrees.yaml", &decrees); err != nil {
		return nil, err
	}
	ref.decrees = decrees.Decrees

	// Regional calendars
	regionFiles, err := fs.Glob(fsys, "regions/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list region files: %w", err)
	}
	for _, file := range regionFiles {
		var region RegionalCalendar
		if err := decodeFile(fsys, file, &region); err != nil {
			return nil, err
		}
		region.ID = strings.ToUpper(region.ID)
		region.Parent = strings.ToUpper(region.Parent)
		sortEditions(region.Missals)
		ref.regions[region.ID] = &region
	}

	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return ref, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidReference, name, err)
	}
	return nil
}

func sortEditions(editions []MissalEdition) {
	sort.SliceStable(editions, func(i, j int) bool {
		return editions[i].SinceYear < editions[j].SinceYear
	})
}

// Validate checks the structure of every record. Problems are collected
// and returned together, wrapped in ErrInvalidReference.
func (r *Reference) Validate() error {
	var errs []error

	if len(r.tempore) == 0 {
		errs = append(errs, errors.New("no proprium de tempore locale"))
	}

	hasBase := false
	for _, m := range r.missals {
		if m.ID == BaseMissal {
			hasBase = len(m.Rows) > 0
		}
		errs = append(errs, validateEdition(m)...)
	}
	if !hasBase {
		errs = append(errs, fmt.Errorf("missal %s is missing or empty", BaseMissal))
	}

	for _, d := range r.decrees {
		errs = append(errs, validateDirective("decree "+d.ID, d)...)
	}

	for id, region := range r.regions {
		switch region.Kind {
		case RegionWider, RegionNational, RegionDiocesan:
		default:
			errs = append(errs, fmt.Errorf("region %s: unknown kind %q", id, region.Kind))
		}
		if region.Kind != RegionWider && region.Parent != "" {
			if _, ok := r.regions[region.Parent]; !ok {
				errs = append(errs, fmt.Errorf("region %s: unknown parent %q", id, region.Parent))
			}
		}
		for _, m := range region.Missals {
			errs = append(errs, validateEdition(m)...)
		}
		for i, d := range region.Directives {
			errs = append(errs, validateDirective(fmt.Sprintf("region %s directive %d", id, i), d)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidReference, errors.Join(errs...))
	}
	return nil
}

func validateEdition(m MissalEdition) []error {
	var errs []error
	if m.ID == "" {
		errs = append(errs, errors.New("missal edition without id"))
	}
	seen := make(map[string]bool)
	for i, row := range m.Rows {
		where := fmt.Sprintf("missal %s row %d (%s)", m.ID, i, row.Key)
		if row.Key == "" {
			errs = append(errs, fmt.Errorf("%s: key is required", where))
		}
		if seen[row.Key] {
			errs = append(errs, fmt.Errorf("%s: duplicate key", where))
		}
		seen[row.Key] = true
		if !validMonthDay(row.Month, row.Day) {
			errs = append(errs, fmt.Errorf("%s: invalid date %d/%d", where, row.Month, row.Day))
		}
		errs = append(errs, validateRankColors(where, row.Rank, row.Colors)...)
	}
	return errs
}

func validateDirective(where string, d Directive) []error {
	var errs []error
	if !d.Action.IsValid() {
		errs = append(errs, fmt.Errorf("%s: unknown action %q", where, d.Action))
	}
	if d.Event.Key == "" {
		errs = append(errs, fmt.Errorf("%s: liturgical_event.key is required", where))
	}
	if d.SinceYear == 0 {
		errs = append(errs, fmt.Errorf("%s: since_year is required", where))
	}
	switch d.Action {
	case ActionCreateNew:
		if d.Event.Relative == "" && !validMonthDay(d.Event.Month, d.Event.Day) {
			errs = append(errs, fmt.Errorf("%s: createNew needs a valid date or relative rule", where))
		}
		errs = append(errs, validateRankColors(where, d.Event.Rank, d.Event.Colors)...)
	case ActionMoveEvent:
		if !validMonthDay(d.Event.Month, d.Event.Day) {
			errs = append(errs, fmt.Errorf("%s: moveEvent needs a valid destination", where))
		}
	case ActionSetProperty:
		if d.Metadata.Property != PropertyName && d.Metadata.Property != PropertyRank {
			errs = append(errs, fmt.Errorf("%s: setProperty needs property name or rank", where))
		}
	}
	return errs
}

func validateRankColors(where string, rank calendar.Rank, colors []calendar.Color) []error {
	var errs []error
	if !rank.IsValid() {
		errs = append(errs, fmt.Errorf("%s: invalid rank", where))
	}
	if len(colors) == 0 {
		errs = append(errs, fmt.Errorf("%s: at least one color is required", where))
	}
	for _, c := range colors {
		if !c.IsValid() {
			errs = append(errs, fmt.Errorf("%s: invalid color %q", where, c))
		}
	}
	return errs
}

// validMonthDay accepts February 29 since leap years exist in range.
func validMonthDay(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	last := calendar.Date(2000, time.Month(month)+1, 0).Day()
	return day <= last
}

// TemporeNames returns the Proprium de Tempore names for locale. The
// lookup is case-insensitive and falls back from "en_US" to "en".
func (r *Reference) TemporeNames(locale string) (map[string]string, error) {
	loc := strings.ToLower(locale)
	if names, ok := r.tempore[loc]; ok {
		return names, nil
	}
	if i := strings.IndexAny(loc, "_-"); i > 0 {
		if names, ok := r.tempore[loc[:i]]; ok {
			return names, nil
		}
	}
	return nil, fmt.Errorf("%w: locale %q", ErrMissingTempore, locale)
}

// Missals returns the universal Missal editions in chronological order.
func (r *Reference) Missals() []MissalEdition {
	return r.missals
}

// Decrees returns the Vatican decrees in file order.
func (r *Reference) Decrees() []Directive {
	return r.decrees
}

// Region returns the regional calendar with the given id.
func (r *Reference) Region(id string) (*RegionalCalendar, bool) {
	region, ok := r.regions[strings.ToUpper(id)]
	return region, ok
}

// Regions returns every regional calendar sorted by id.
func (r *Reference) Regions() []*RegionalCalendar {
	out := make([]*RegionalCalendar, 0, len(r.regions))
	for _, region := range r.regions {
		out = append(out, region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Chain returns the regional calendars that apply to the given national
// and diocesan ids, outermost first: wider region, nation, diocese.
func (r *Reference) Chain(national, diocesan string) ([]*RegionalCalendar, error) {
	if national == "" {
		return nil, nil
	}
	nation, ok := r.Region(national)
	if !ok || nation.Kind != RegionNational {
		return nil, fmt.Errorf("unknown national calendar %q", national)
	}

	var chain []*RegionalCalendar
	if nation.Parent != "" {
		if wider, ok := r.Region(nation.Parent); ok {
			chain = append(chain, wider)
		}
	}
	chain = append(chain, nation)

	if diocesan != "" {
		diocese, ok := r.Region(diocesan)
		if !ok || diocese.Kind != RegionDiocesan {
			return nil, fmt.Errorf("unknown diocesan calendar %q", diocesan)
		}
		if diocese.Parent != nation.ID {
			return nil, fmt.Errorf("diocese %s does not belong to %s", diocese.ID, nation.ID)
		}
		chain = append(chain, diocese)
	}
	return chain, nil
}

// ResolveSettings fills the observance modes left empty in s from the
// diocesan, then national calendar defaults, then the General Roman
// Calendar defaults.
func (r *Reference) ResolveSettings(s calendar.Settings) (calendar.Settings, error) {
	chain, err := r.Chain(s.NationalCalendar, s.DiocesanCalendar)
	if err != nil {
		return s, err
	}
	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i].Settings
		if s.Epiphany == "" {
			s.Epiphany = d.Epiphany
		}
		if s.Ascension == "" {
			s.Ascension = d.Ascension
		}
		if s.CorpusChristi == "" {
			s.CorpusChristi = d.CorpusChristi
		}
		if s.Locale == "" {
			s.Locale = d.Locale
		}
	}

	defaults := calendar.DefaultSettings(s.Year)
	if s.Epiphany == "" {
		s.Epiphany = defaults.Epiphany
	}
	if s.Ascension == "" {
		s.Ascension = defaults.Ascension
	}
	if s.CorpusChristi == "" {
		s.CorpusChristi = defaults.CorpusChristi
	}
	if s.Locale == "" {
		s.Locale = defaults.Locale
	}
	s.NationalCalendar = strings.ToUpper(s.NationalCalendar)
	s.DiocesanCalendar = strings.ToUpper(s.DiocesanCalendar)
	return s, nil
}

// WithRegion returns a copy of r that also holds region, replacing any
// calendar with the same id. The receiver is not modified.
func (r *Reference) WithRegion(region RegionalCalendar) (*Reference, error) {
	region.ID = strings.ToUpper(region.ID)
	region.Parent = strings.ToUpper(region.Parent)

	out := &Reference{
		tempore: r.tempore,
		missals: r.missals,
		decrees: r.decrees,
		regions: make(map[string]*RegionalCalendar, len(r.regions)+1),
	}
	for id, existing := range r.regions {
		out.regions[id] = existing
	}
	out.regions[region.ID] = &region

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
