package calendar

import (
	"testing"
	"time"

	"aoc-inputs/internal/models"
)

func TestLastAvailable(t *testing.T) {
	tests := []struct {
		now  string
		want models.Puzzle
	}{
		{"2024-12-03T04:00:00Z", models.Puzzle{Year: 2023, Day: 25}},
		{"2024-12-03T06:00:00Z", models.Puzzle{Year: 2024, Day: 3}},
		{"2024-12-03T05:00:00Z", models.Puzzle{Year: 2024, Day: 3}},
		{"2024-06-15T12:00:00Z", models.Puzzle{Year: 2023, Day: 25}},
		{"2024-12-01T05:00:00Z", models.Puzzle{Year: 2024, Day: 1}},
		{"2024-12-25T05:30:00Z", models.Puzzle{Year: 2024, Day: 25}},
		{"2024-12-31T23:59:00Z", models.Puzzle{Year: 2024, Day: 25}},
		{"2025-01-01T00:00:00Z", models.Puzzle{Year: 2024, Day: 25}},
		{"2024-11-30T23:00:00Z", models.Puzzle{Year: 2023, Day: 25}},
	}
	for _, tt := range tests {
		now, err := time.Parse(time.RFC3339, tt.now)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.now, err)
		}
		got := LastAvailable(now)
		if got != tt.want {
			t.Errorf("LastAvailable(%s) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestLastAvailableUsesUTC(t *testing.T) {
	// 2024-12-03 01:00 in New York is 06:00 UTC.
	ny := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, time.December, 3, 1, 0, 0, 0, ny)

	got := LastAvailable(now)
	want := models.Puzzle{Year: 2024, Day: 3}
	if got != want {
		t.Errorf("LastAvailable = %v, want %v", got, want)
	}
}

func TestEnumerate(t *testing.T) {
	got := Enumerate(2015, models.Puzzle{Year: 2016, Day: 3}, Filter{})
	if len(got) != 28 {
		t.Fatalf("expected 28 puzzles, got %d", len(got))
	}
	if got[0] != (models.Puzzle{Year: 2015, Day: 1}) {
		t.Errorf("first = %v", got[0])
	}
	if got[24] != (models.Puzzle{Year: 2015, Day: 25}) {
		t.Errorf("got[24] = %v", got[24])
	}
	if got[27] != (models.Puzzle{Year: 2016, Day: 3}) {
		t.Errorf("last = %v", got[27])
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if cur.Year < prev.Year || (cur.Year == prev.Year && cur.Day <= prev.Day) {
			t.Fatalf("not ordered at %d: %v after %v", i, cur, prev)
		}
	}
}

func TestEnumerateInvariants(t *testing.T) {
	for _, p := range Released(time.Date(2024, time.December, 10, 12, 0, 0, 0, time.UTC), 2015, Filter{}) {
		if !p.Valid() {
			t.Fatalf("invalid puzzle %v", p)
		}
	}
}

func TestEnumerateClampsStartYear(t *testing.T) {
	got := Enumerate(2010, models.Puzzle{Year: 2015, Day: 2}, Filter{})
	if len(got) != 2 {
		t.Fatalf("expected 2 puzzles, got %d: %v", len(got), got)
	}
}

func TestEnumerateStartAfterLast(t *testing.T) {
	if got := Enumerate(2030, models.Puzzle{Year: 2024, Day: 25}, Filter{}); len(got) != 0 {
		t.Errorf("expected none, got %v", got)
	}
}

func TestEnumerateFilter(t *testing.T) {
	last := models.Puzzle{Year: 2024, Day: 3}
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"year", Filter{Year: 2020}, 25},
		{"current year", Filter{Year: 2024}, 3},
		{"day", Filter{Day: 5}, 9},
		{"year and day", Filter{Year: 2017, Day: 12}, 1},
		{"unreleased day", Filter{Year: 2024, Day: 10}, 0},
		{"future year", Filter{Year: 2026}, 0},
	}
	for _, tt := range tests {
		got := Enumerate(2015, last, tt.filter)
		if len(got) != tt.want {
			t.Errorf("%s: got %d puzzles, want %d", tt.name, len(got), tt.want)
		}
	}
}
