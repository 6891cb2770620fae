// Package progress turns raw catalog and progress rows into the numbers the
// dashboards show: day streaks, per-category rollups, points and ranks.
// Everything here is pure and works on already-fetched slices.
package progress

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"techguide/backend/models"
)

const (
	DefaultTimezone = "America/New_York"
	dateLayout      = "2006-01-02"
)

// Calculator evaluates calendar-day based statistics in one fixed location
// so results do not depend on the server's local clock.
type Calculator struct {
	loc *time.Location
	now func() time.Time
}

func NewCalculator(timezone string) (*Calculator, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("progress: load timezone %q: %w", timezone, err)
	}
	return &Calculator{loc: loc, now: time.Now}, nil
}

// WithClock returns a copy of c that reads the current time from now.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Calculator) Location() *time.Location { return c.loc }

// CivilDate formats t as YYYY-MM-DD in the calculator's location.
func (c *Calculator) CivilDate(t time.Time) string {
	return t.In(c.loc).Format(dateLayout)
}

// Today returns today's civil date in the calculator's location.
func (c *Calculator) Today() string {
	return c.CivilDate(c.now())
}

// Streak counts consecutive civil days with at least one completion,
// ending today, or yesterday when nothing was completed today yet. Zero
// timestamps are ignored.
func (c *Calculator) Streak(completions []time.Time) int {
	days := make(map[string]struct{}, len(completions))
	latest := ""
	for _, ts := range completions {
		if ts.IsZero() {
			continue
		}
		d := c.CivilDate(ts)
		days[d] = struct{}{}
		if d > latest {
			latest = d
		}
	}
	if len(days) == 0 {
		return 0
	}

	today := c.Today()
	yesterday := previousDay(today)
	if latest < yesterday {
		return 0
	}

	cursor := yesterday
	if _, ok := days[today]; ok {
		cursor = today
	}

	streak := 0
	for {
		if _, ok := days[cursor]; !ok {
			return streak
		}
		streak++
		cursor = previousDay(cursor)
	}
}

// StreakFromRecords is Streak over the completion times of records.
func (c *Calculator) StreakFromRecords(records []models.ProgressRecord) int {
	ts := make([]time.Time, 0, len(records))
	for _, r := range records {
		if r.CompletedAt != nil {
			ts = append(ts, *r.CompletedAt)
		}
	}
	return c.Streak(ts)
}

// previousDay steps a civil date back by one calendar day. The arithmetic
// runs in UTC on the date alone, so DST shifts in the display location
// cannot skip or repeat a day.
func previousDay(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, -1).Format(dateLayout)
}
