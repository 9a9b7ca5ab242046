package main

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"strings"
	"testing"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
)

func runLitcal(t *testing.T, opts options) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(&buf, opts, slog.New(slog.DiscardHandler))
	return buf.String(), err
}

func TestRun_KeyDates(t *testing.T) {
	out, err := runLitcal(t, options{settings: calendar.Settings{Year: 2024}, view: "keydates"})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, want := range []string{
		"Ash Wednesday:   2024-02-14",
		"Easter:          2024-03-31",
		"Pentecost:       2024-05-19",
		"Advent Start:    2024-12-01",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_EverySundayCSV(t *testing.T) {
	out, err := runLitcal(t, options{
		settings: calendar.Settings{Year: 2024},
		view:     "all",
		format:   "csv",
		every:    "Sunday",
	})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	// Header plus the 52 Sundays of 2024.
	if len(records) != 53 {
		t.Fatalf("got %d records, want 53", len(records))
	}
	if got := records[1][0]; got != "2024-01-07" {
		t.Errorf("first Sunday = %s, want 2024-01-07", got)
	}
	if got := records[len(records)-1][1]; got != "HolyFamily" {
		t.Errorf("last Sunday key = %s, want HolyFamily", got)
	}
}

func TestRun_Text(t *testing.T) {
	out, err := runLitcal(t, options{
		settings: calendar.Settings{Year: 2025},
		view:     "solemnities",
		format:   "text",
		messages: true,
	})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, want := range []string{"Liturgical Calendar 2025", "2025-12-25", "Christmas", "TOTAL:", "=== Messages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"unknown view", options{settings: calendar.Settings{Year: 2024}, view: "octaves", format: "text"}},
		{"unknown format", options{settings: calendar.Settings{Year: 2024}, view: "all", format: "xml"}},
		{"unknown weekday", options{settings: calendar.Settings{Year: 2024}, view: "all", format: "text", every: "someday"}},
		{"year out of range", options{settings: calendar.Settings{Year: 1969}, view: "all", format: "text"}},
		{"unknown nation", options{settings: calendar.Settings{Year: 2024, NationalCalendar: "XX"}, view: "all", format: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runLitcal(t, tt.opts); err == nil {
				t.Error("run() expected error")
			}
		})
	}
}
