package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/api"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
)

// =============================================================================
// Response Types
// =============================================================================

// APIResponse mirrors api.Response with the payload left raw.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Liturgical Calendar API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	// Run test groups
	tr.testHealth()
	tr.testCalendars()
	tr.testKeyDates()
	tr.testSpecificDates()
	tr.testRegionalDates()
	tr.testEdgeCases()
	tr.testICS()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health api.HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (cache %s)", health.Cache))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testCalendars() {
	tr.printSection("Regional Calendars")

	var calendars []api.CalendarInfo
	if err := tr.getData("/api/v1/calendars", &calendars); err != nil {
		tr.recordError("Calendars", err.Error())
		return
	}
	if len(calendars) == 0 {
		tr.recordError("Calendars", "No regional calendars returned")
		return
	}
	for _, c := range calendars {
		tr.recordSuccess(fmt.Sprintf("%s (%s): %s", c.ID, c.Kind, c.Name))
	}
}

func (tr *TestRunner) testKeyDates() {
	tr.printSection("Key Dates")

	testCases := []struct {
		year   int
		easter string
	}{
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
		{2026, "2026-04-05"},
	}

	for _, tc := range testCases {
		var cal engine.Calendar
		if err := tr.getData(fmt.Sprintf("/api/v1/calendar/%d?view=all", tc.year), &cal); err != nil {
			tr.recordError(fmt.Sprint(tc.year), err.Error())
			continue
		}

		got := cal.KeyDates().Easter.Format("2006-01-02")
		if got == tc.easter {
			tr.recordSuccess(fmt.Sprintf("%d: Easter %s, %d events, %d messages",
				tc.year, got, len(cal.Events()), len(cal.Messages())))
		} else {
			tr.recordError(fmt.Sprint(tc.year), fmt.Sprintf("Expected Easter %s, got %s", tc.easter, got))
		}
	}
}

func (tr *TestRunner) testSpecificDates() {
	tr.printSection("Specific Date Tests")

	testCases := []struct {
		date        string
		expectedKey string
		description string
	}{
		{"2025-01-01", "MotherGod", "Mary, Mother of God"},
		{"2025-01-06", "Epiphany", "Epiphany on January 6"},
		{"2025-03-05", "AshWednesday", "Ash Wednesday 2025"},
		{"2025-04-13", "PalmSun", "Palm Sunday 2025"},
		{"2025-04-20", "Easter", "Easter Sunday 2025"},
		{"2025-06-08", "Pentecost", "Pentecost Sunday 2025"},
		{"2025-06-15", "Trinity", "Trinity Sunday"},
		{"2025-11-23", "ChristKing", "Christ the King"},
		{"2025-11-30", "Advent1", "First Sunday of Advent 2025"},
		{"2025-12-25", "Christmas", "Christmas Day 2025"},
	}

	for _, tc := range testCases {
		tr.checkPrincipal(tc.date[:4], tc.date, "", tc.expectedKey, tc.description)
	}
}

func (tr *TestRunner) testRegionalDates() {
	tr.printSection("Regional Calendars")

	tr.checkPrincipal("2025", "2025-01-05", "national=US", "Epiphany", "US Epiphany on Sunday")
	tr.checkPrincipal("2025", "2025-06-01", "national=US", "Ascension", "US Ascension on Sunday")
	tr.checkPrincipal("2025", "2025-05-26", "national=IT&diocese=ROMA", "StPhilipNeri", "Patron of Rome")
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	checks := []struct {
		path string
		want int
		desc string
	}{
		{"/api/v1/calendar/2025/date/invalid", http.StatusBadRequest, "Invalid date format rejected"},
		{"/api/v1/calendar/2025/date/2024-12-25", http.StatusBadRequest, "Date outside the year rejected"},
		{"/api/v1/calendar/1969", http.StatusBadRequest, "Year before 1970 rejected"},
		{"/api/v1/calendar/2025?national=XX", http.StatusNotFound, "Unknown national calendar rejected"},
		{"/api/v1/calendar/2025?epiphany=JAN7", http.StatusBadRequest, "Unknown Epiphany mode rejected"},
	}

	for _, c := range checks {
		resp, err := tr.getRaw(c.path)
		if err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == c.want {
			tr.recordSuccess(c.desc)
		} else {
			tr.recordError(c.path, fmt.Sprintf("Expected HTTP %d, got %d", c.want, resp.StatusCode))
		}
	}

	// Leap day
	tr.checkPrincipal("2024", "2024-02-29", "", "", "Leap year date (2024-02-29) handled")
}

func (tr *TestRunner) testICS() {
	tr.printSection("iCalendar Export")

	resp, err := tr.getRaw("/api/v1/calendar/2025/ics")
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}

	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "BEGIN:VCALENDAR") {
		tr.recordError("ICS", fmt.Sprintf("HTTP %d, %d bytes", resp.StatusCode, len(body)))
		return
	}
	tr.recordSuccess(fmt.Sprintf("ICS feed: %d events", strings.Count(string(body), "BEGIN:VEVENT")))
}

// =============================================================================
// Helper Methods
// =============================================================================

// checkPrincipal fetches one date and compares its principal celebration
// with wantKey. An empty wantKey only requires a principal.
func (tr *TestRunner) checkPrincipal(year, date, query, wantKey, description string) {
	path := fmt.Sprintf("/api/v1/calendar/%s/date/%s", year, date)
	if query != "" {
		path += "?" + query
	}

	var data api.DateResponse
	if err := tr.getData(path, &data); err != nil {
		tr.recordError(date, err.Error())
		return
	}
	if data.Principal == nil {
		tr.recordError(date, "No principal celebration")
		return
	}

	if wantKey == "" || data.Principal.Key == wantKey {
		tr.recordSuccess(fmt.Sprintf("%s: %s [%s] (%s)",
			date, data.Principal.Name, data.Principal.Rank, description))
	} else {
		tr.recordError(date, fmt.Sprintf("Expected '%s', got '%s'", wantKey, data.Principal.Key))
	}

	if tr.verbose {
		tr.printEventsDetail(data.Events)
	}
}

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.getRaw(path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printEventsDetail(events []*engine.LiturgicalEvent) {
	for _, e := range events {
		vigil := ""
		if e.IsVigilMass {
			vigil = " (vigil)"
		}
		fmt.Printf("    - %s%s: %s, %s, %s\n", e.Key, vigil, e.Rank, e.Season, e.YearCycle)
	}
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show every event of a date)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
