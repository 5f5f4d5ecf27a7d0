// Package calendar works out which puzzles have been released at a given time.
package calendar

import (
	"time"

	"aoc-inputs/internal/models"
)

// UnlockHour is the UTC hour at which a new December puzzle is released.
const UnlockHour = 5

// LastAvailable returns the most recent puzzle expected to exist at now.
func LastAvailable(now time.Time) models.Puzzle {
	now = now.UTC()

	year := now.Year() - 1
	if now.Month() == time.December && now.Hour() >= UnlockHour {
		year = now.Year()
	}

	day := now.Day()
	if day >= models.LastDay || year != now.Year() {
		day = models.LastDay
	}

	return models.Puzzle{Year: year, Day: day}
}

// Filter narrows an enumeration to one year and/or one day. Zero means any.
type Filter struct {
	Year int
	Day  int
}

func (f Filter) match(p models.Puzzle) bool {
	if f.Year != 0 && f.Year != p.Year {
		return false
	}
	if f.Day != 0 && f.Day != p.Day {
		return false
	}
	return true
}

// Enumerate lists every puzzle from startYear through last in (year, day) order.
// Years before last.Year run to the final day; last.Year stops at last.Day.
func Enumerate(startYear int, last models.Puzzle, f Filter) []models.Puzzle {
	if startYear < models.FirstYear {
		startYear = models.FirstYear
	}

	var out []models.Puzzle
	for year := startYear; year <= last.Year; year++ {
		lastDay := models.LastDay
		if year == last.Year {
			lastDay = last.Day
		}
		for day := 1; day <= lastDay; day++ {
			p := models.Puzzle{Year: year, Day: day}
			if f.match(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Released returns the puzzles available at now, starting from startYear.
func Released(now time.Time, startYear int, f Filter) []models.Puzzle {
	return Enumerate(startYear, LastAvailable(now), f)
}
