// Command litcal prints the liturgical calendar of one year.
//
// Usage:
//
//	litcal -year 2025
//	litcal -year 2025 -national IT -diocese ROMA -view solemnities
//	litcal -year 2025 -every sunday
//	litcal -year 2025 -format ics > 2025.ics
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
	"github.com/zapponejosh/liturgical-calendar/internal/ical"
	"github.com/zapponejosh/liturgical-calendar/internal/logger"
)

type options struct {
	settings calendar.Settings
	view     string
	format   string
	every    string
	messages bool
	verbose  bool
}

func main() {
	opts := parseFlags()

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := logger.New(os.Stderr, level, "text")

	if err := run(os.Stdout, opts, log); err != nil {
		fmt.Fprintf(os.Stderr, "litcal: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	s := &opts.settings

	flag.IntVar(&s.Year, "year", time.Now().Year(), "Civil year to compute")
	flag.StringVar(&s.NationalCalendar, "national", "", "National calendar id, e.g. US or IT")
	flag.StringVar(&s.DiocesanCalendar, "diocese", "", "Diocesan calendar id, e.g. ROMA")
	flag.StringVar(&s.Locale, "locale", "", "Locale of the names (default from the calendar)")
	epiphany := flag.String("epiphany", "", "JAN6 or SUNDAY_JAN2_JAN8")
	ascension := flag.String("ascension", "", "THURSDAY or SUNDAY")
	corpusChristi := flag.String("corpus-christi", "", "THURSDAY or SUNDAY")
	flag.StringVar(&opts.view, "view", "all", "all, solemnities, feasts or keydates")
	flag.StringVar(&opts.format, "format", "text", "text, csv, json or ics")
	flag.StringVar(&opts.every, "every", "", "Only print the principal celebration of every given weekday, e.g. sunday")
	flag.BoolVar(&opts.messages, "messages", false, "Print the audit trail after the calendar")
	flag.BoolVar(&opts.verbose, "v", false, "Log every decision to stderr")
	flag.Parse()

	s.Epiphany = calendar.EpiphanyMode(strings.ToUpper(*epiphany))
	s.Ascension = calendar.ObservanceMode(strings.ToUpper(*ascension))
	s.CorpusChristi = calendar.ObservanceMode(strings.ToUpper(*corpusChristi))
	return opts
}

func run(w io.Writer, opts options, log *slog.Logger) error {
	ref, err := data.Default()
	if err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}

	cal, err := engine.New(ref, logger.Component(log, "engine")).Compute(opts.settings)
	if err != nil {
		return err
	}

	if opts.view == "keydates" {
		printKeyDates(w, cal)
		return nil
	}

	var events []*engine.LiturgicalEvent
	switch {
	case opts.every != "":
		events, err = principalsEvery(cal, opts.every)
		if err != nil {
			return err
		}
	case opts.view == "all":
		events = cal.Events()
	case opts.view == "solemnities":
		events = cal.Solemnities()
	case opts.view == "feasts":
		events = cal.FeastsAndMemorials()
	default:
		return fmt.Errorf("unknown view %q", opts.view)
	}

	switch opts.format {
	case "text":
		printText(w, cal, events)
	case "csv":
		if err := printCSV(w, events); err != nil {
			return err
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(events); err != nil {
			return err
		}
	case "ics":
		return ical.Write(w, cal, ical.Options{})
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.messages {
		printMessages(w, cal.Messages())
	}
	return nil
}

var weekdays = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

// principalsEvery returns the principal celebration of every occurrence
// of the named weekday in the calendar year.
func principalsEvery(cal *engine.Calendar, day string) ([]*engine.LiturgicalEvent, error) {
	wd, ok := weekdays[strings.ToLower(day)]
	if !ok {
		return nil, fmt.Errorf("unknown weekday %q", day)
	}

	year := cal.Settings().Year
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{wd},
		Dtstart:   calendar.Date(year, time.January, 1),
		Until:     calendar.Date(year, time.December, 31),
	})
	if err != nil {
		return nil, err
	}

	var out []*engine.LiturgicalEvent
	for _, d := range rule.All() {
		if e := cal.Principal(calendar.Truncate(d)); e != nil {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no celebrations found")
	}
	return out, nil
}

func rankLabel(e *engine.LiturgicalEvent) string {
	if e.DisplayRank != "" {
		return e.DisplayRank
	}
	return e.Rank.String()
}

func printKeyDates(w io.Writer, cal *engine.Calendar) {
	k := cal.KeyDates()
	fmt.Fprintf(w, "=== Key Dates for %d ===\n\n", cal.Settings().Year)
	fmt.Fprintf(w, "  Ash Wednesday:   %s\n", calendar.FormatDate(k.AshWednesday))
	fmt.Fprintf(w, "  Easter:          %s\n", calendar.FormatDate(k.Easter))
	fmt.Fprintf(w, "  Pentecost:       %s\n", calendar.FormatDate(k.Pentecost))
	fmt.Fprintf(w, "  Advent Start:    %s\n", calendar.FormatDate(k.Advent1))
}

func printText(w io.Writer, cal *engine.Calendar, events []*engine.LiturgicalEvent) {
	s := cal.Settings()
	fmt.Fprintf(w, "=== Liturgical Calendar %d ===\n", s.Year)
	fmt.Fprintf(w, "  %s\n\n", s)

	seasonCounts := make(map[calendar.Season]int)
	for _, e := range events {
		marker := " "
		if e.IsVigilMass {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s %-3s %-18s %s\n",
			calendar.FormatDate(e.Date), marker, e.Date.Weekday().String()[:3], rankLabel(e), e.Name)
		seasonCounts[e.Season]++
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Celebrations by season:")
	for _, season := range calendar.ValidSeasons() {
		if count, ok := seasonCounts[season]; ok {
			fmt.Fprintf(w, "  %-16s %d\n", string(season)+":", count)
		}
	}
	fmt.Fprintf(w, "  %-16s %d\n", "TOTAL:", len(events))
}

func printCSV(w io.Writer, events []*engine.LiturgicalEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "key", "name", "rank", "season", "psalter_week", "cycle", "origin"}); err != nil {
		return err
	}
	for _, e := range events {
		psalter := ""
		if e.PsalterWeek > 0 {
			psalter = fmt.Sprint(e.PsalterWeek)
		}
		record := []string{
			calendar.FormatDate(e.Date), e.Key, e.Name, rankLabel(e),
			string(e.Season), psalter, string(e.YearCycle), string(e.Origin),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func printMessages(w io.Writer, messages []engine.Message) {
	fmt.Fprintf(w, "\n=== Messages (%d) ===\n", len(messages))
	for _, m := range messages {
		fmt.Fprintf(w, "%-22s %s\n", m.Code, m.Text)
	}
}
