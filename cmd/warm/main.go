// Command warm precomputes calendars into the SQLite cache.
//
// Usage:
//
//	go run ./cmd/warm -from 2024 -to 2030 -calendars ,US,IT,IT/ROMA -db data/calendar.db
//
// This tool:
// 1. Creates/opens the SQLite cache
// 2. Runs migrations to ensure schema is current
// 3. Computes every requested year for every requested calendar
// 4. Stores the results for the current cache epoch in a single transaction
//
// Running it twice replaces the stored calendars of the current epoch.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/liturgical-calendar/internal/calendar"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/database"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
	"github.com/zapponejosh/liturgical-calendar/internal/logger"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", "data/calendar.db", "Path to SQLite cache")
	from := flag.Int("from", time.Now().Year(), "First year to compute")
	to := flag.Int("to", time.Now().Year()+1, "Last year to compute")
	calendars := flag.String("calendars", "", "Comma-separated NATION or NATION/DIOCESE ids; empty entry is the General Roman Calendar")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.New(os.Stdout, level, "text")

	targets, err := parseTargets(*calendars)
	if err != nil {
		log.Error("invalid -calendars", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(*dbPath, *from, *to, targets, log); err != nil {
		log.Error("warm failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("warm complete")
}

// target is one regional calendar to compute.
type target struct {
	national string
	diocese  string
}

func (t target) String() string {
	switch {
	case t.national == "":
		return "GRC"
	case t.diocese == "":
		return t.national
	default:
		return t.national + "/" + t.diocese
	}
}

// parseTargets splits a list such as ",US,IT/ROMA" into targets.
func parseTargets(list string) ([]target, error) {
	var out []target
	for _, item := range strings.Split(list, ",") {
		item = strings.ToUpper(strings.TrimSpace(item))
		national, diocese, _ := strings.Cut(item, "/")
		if national == "" && diocese != "" {
			return nil, fmt.Errorf("diocese %s without a nation", diocese)
		}
		out = append(out, target{national: national, diocese: diocese})
	}
	return out, nil
}

func run(dbPath string, from, to int, targets []target, log *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	if from > to {
		return fmt.Errorf("-from %d is after -to %d", from, to)
	}

	ref, err := data.Default()
	if err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}
	eng := engine.New(ref, logger.Component(log, "engine"))

	// =========================================================================
	// Step 1: Open cache and run migrations
	// =========================================================================
	log.Info("opening cache", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger.Component(log, "database"))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 2: Compute and store in a transaction
	// =========================================================================
	epoch := database.Epoch(startTime)
	log.Info("starting warm", slog.String("epoch", epoch), slog.Int("from", from), slog.Int("to", to))

	var stats WarmStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return warm(ctx, tx, eng, epoch, from, to, targets, log, &stats)
	})
	if err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}

	// =========================================================================
	// Step 3: Verify
	// =========================================================================
	cacheStats, err := db.GetCacheStats(ctx)
	if err != nil {
		return fmt.Errorf("cache stats: %w", err)
	}

	elapsed := time.Since(startTime)
	log.Info("warm verified",
		slog.Int("entries", cacheStats.Entries),
		slog.Int("epoch_entries", cacheStats.Epochs[epoch]),
		slog.Int64("bytes", cacheStats.Bytes),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Warm Summary ===")
	fmt.Printf("Calendars stored:    %d\n", stats.Calendars)
	fmt.Printf("Events computed:     %d\n", stats.Events)
	fmt.Printf("Messages recorded:   %d\n", stats.Messages)
	fmt.Printf("Payload bytes:       %d\n", stats.Bytes)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// WarmStats tracks warm statistics.
type WarmStats struct {
	Calendars int
	Events    int
	Messages  int
	Bytes     int
}

// warm computes every year of every target and stores it in tx.
func warm(ctx context.Context, tx *database.Tx, eng *engine.Engine, epoch string, from, to int, targets []target, log *slog.Logger, stats *WarmStats) error {
	for _, t := range targets {
		for year := from; year <= to; year++ {
			cal, err := eng.Compute(calendar.Settings{
				Year:             year,
				NationalCalendar: t.national,
				DiocesanCalendar: t.diocese,
			})
			if err != nil {
				return fmt.Errorf("compute %s %d: %w", t, year, err)
			}

			payload, err := json.Marshal(cal)
			if err != nil {
				return fmt.Errorf("encode %s %d: %w", t, year, err)
			}

			s := cal.Settings()
			if err := tx.PutCalendar(ctx, &database.CachedCalendar{
				Key:      s.CacheKey(),
				Epoch:    epoch,
				Settings: s.String(),
				Year:     year,
				Payload:  payload,
			}); err != nil {
				return err
			}

			stats.Calendars++
			stats.Events += len(cal.Events())
			stats.Messages += len(cal.Messages())
			stats.Bytes += len(payload)

			log.Debug("calendar stored", slog.String("calendar", t.String()), slog.Int("year", year))
		}
	}

	return nil
}
