package models

import (
	"testing"
	"time"
)

func TestApplicationsOverTime(t *testing.T) {
	now := time.Now()
	candidates := []Candidate{
		{AppliedAt: now},
		{AppliedAt: now.AddDate(0, 0, -1)},
		{AppliedAt: now.AddDate(0, 0, -21)},
		{AppliedAt: now.AddDate(0, 0, -365)}, // outside the window
	}

	buckets := ApplicationsOverTime(candidates, 4)
	if len(buckets) != 4 {
		t.Fatalf("got %d buckets, want 4", len(buckets))
	}

	total := 0
	for i, b := range buckets {
		total += b.Count
		if i > 0 && buckets[i-1].WeekStart >= b.WeekStart {
			t.Errorf("buckets not in ascending week order: %q then %q",
				buckets[i-1].WeekStart, b.WeekStart)
		}
	}
	if total != 3 {
		t.Errorf("window holds %d applications, want 3", total)
	}
	if buckets[len(buckets)-1].Count < 1 {
		t.Error("current week should count today's applications")
	}
}

func TestApplicationsOverTime_ZeroWeeks(t *testing.T) {
	if got := ApplicationsOverTime(nil, 0); len(got) != 0 {
		t.Errorf("expected no buckets, got %v", got)
	}
}
