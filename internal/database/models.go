package database

import "time"

// CachedCalendar is one stored calendar.
type CachedCalendar struct {
	Key       string     `json:"key"`
	Epoch     string     `json:"epoch"`
	Settings  string     `json:"settings"`
	Year      int        `json:"year"`
	Payload   []byte     `json:"-"`
	Hits      int        `json:"hits"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	LastHitAt *time.Time `json:"last_hit_at,omitempty"`
}

// CacheStats summarizes the store.
type CacheStats struct {
	Entries int            `json:"entries"`
	Bytes   int64          `json:"bytes"`
	Hits    int            `json:"hits"`
	Epochs  map[string]int `json:"epochs"`
}

// EpochFormat is the layout of cache epochs: one per calendar month.
const EpochFormat = "2006-01"

// Epoch returns the cache epoch containing t.
func Epoch(t time.Time) string {
	return t.UTC().Format(EpochFormat)
}
