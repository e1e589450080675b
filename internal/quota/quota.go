// Package quota tracks per-source daily fetch counters. Counters are scoped
// to a UTC calendar day and persisted to a small JSON file so they survive
// process restarts. Check and Increment are deliberately separate calls: the
// limit is a soft advisory cap, and two in-flight fetches for the same source
// may both pass Check before either increments.
package quota

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const defaultDailyLimit = 100

// Record holds the persisted usage for a single source.
type Record struct {
	Count int    `json:"count"`
	Day   string `json:"day"` // YYYY-MM-DD, UTC
}

// Tracker owns the persisted counters. All operations are mutex-guarded in
// process and flock-guarded on disk.
type Tracker struct {
	mu           sync.Mutex
	path         string
	lock         *flock.Flock
	limits       map[string]int
	defaultLimit int
	logger       *zap.Logger

	now func() time.Time
}

// New creates a tracker persisting to path. limits maps source names to their
// daily ceilings; sources without an entry use defaultLimit (or 100 when
// defaultLimit is non-positive).
func New(path string, limits map[string]int, defaultLimit int, logger *zap.Logger) *Tracker {
	if defaultLimit <= 0 {
		defaultLimit = defaultDailyLimit
	}
	return &Tracker{
		path:         path,
		lock:         flock.New(path + ".lock"),
		limits:       limits,
		defaultLimit: defaultLimit,
		logger:       logger,
		now:          time.Now,
	}
}

// Limit returns the configured daily ceiling for a source.
func (t *Tracker) Limit(source string) int {
	if limit, ok := t.limits[source]; ok && limit > 0 {
		return limit
	}
	return t.defaultLimit
}

// Check reports whether a paid fetch for source is still allowed today and
// how many calls remain. A record from a previous day counts as zero.
func (t *Tracker) Check(source string) (allowed bool, remaining int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.load()
	limit := t.Limit(source)

	rec, ok := records[source]
	if !ok || rec.Day != t.today() {
		return true, limit
	}

	remaining = limit - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	return rec.Count < limit, remaining
}

// Increment records one successful paid fetch for source. Call only after
// the fetch actually happened.
func (t *Tracker) Increment(source string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.load()
	today := t.today()

	rec, ok := records[source]
	if !ok || rec.Day != today {
		rec = Record{Day: today}
	}
	rec.Count++
	records[source] = rec

	return t.save(records)
}

// Stats returns today's usage per source. Records from previous days are
// reported as zero usage.
func (t *Tracker) Stats() map[string]Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.load()
	today := t.today()

	stats := make(map[string]Record, len(records))
	for source, rec := range records {
		if rec.Day != today {
			rec = Record{Day: today}
		}
		stats[source] = rec
	}
	return stats
}

func (t *Tracker) today() string {
	return t.now().UTC().Format("2006-01-02")
}

func (t *Tracker) load() map[string]Record {
	records := make(map[string]Record)

	if err := t.lock.Lock(); err != nil {
		t.logger.Warn("locking quota file", zap.Error(err))
		return records
	}
	defer t.lock.Unlock()

	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.logger.Warn("reading quota file", zap.Error(err))
		}
		return records
	}

	if err := json.Unmarshal(data, &records); err != nil {
		t.logger.Warn("parsing quota file, starting fresh", zap.Error(err))
		return make(map[string]Record)
	}
	return records
}

func (t *Tracker) save(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling quota records: %w", err)
	}

	if err := t.lock.Lock(); err != nil {
		return fmt.Errorf("locking quota file: %w", err)
	}
	defer t.lock.Unlock()

	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("writing quota file: %w", err)
	}
	return nil
}
