package models

import "fmt"

// Puzzle identifies a single day of a single event
type Puzzle struct {
	Year int
	Day  int
}

const (
	FirstYear = 2015 // First event year
	LastDay   = 25   // Days per event
)

func (p Puzzle) String() string {
	return fmt.Sprintf("%d/%d", p.Year, p.Day)
}

// Valid reports whether the day is within an event and the year is not before the first one
func (p Puzzle) Valid() bool {
	return p.Year >= FirstYear && p.Day >= 1 && p.Day <= LastDay
}
