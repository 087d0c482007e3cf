package models

import "time"

// WeeklyCount is one bucket of an applications-over-time series.
type WeeklyCount struct {
	WeekStart string `json:"weekStart"` // Monday of the bucket, YYYY-MM-DD
	Count     int    `json:"count"`
}

// ApplicationsOverTime buckets candidates by the week they applied, covering
// the last weeks buckets up to and including the current week. Empty weeks
// are kept so charts render gaps instead of skipping them.
func ApplicationsOverTime(candidates []Candidate, weeks int) []WeeklyCount {
	if weeks <= 0 {
		return []WeeklyCount{}
	}

	now := weekStart(time.Now())
	counts := make(map[string]int, weeks)
	oldest := now.AddDate(0, 0, -7*(weeks-1))
	for _, c := range candidates {
		ws := weekStart(c.AppliedAt)
		if ws.Before(oldest) || ws.After(now) {
			continue
		}
		counts[ws.Format("2006-01-02")]++
	}

	out := make([]WeeklyCount, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		ws := now.AddDate(0, 0, -7*i).Format("2006-01-02")
		out = append(out, WeeklyCount{WeekStart: ws, Count: counts[ws]})
	}
	return out
}

// weekStart returns the Monday 00:00 of t's week.
func weekStart(t time.Time) time.Time {
	t = t.Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
