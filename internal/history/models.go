package history

import "time"

type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Downloaded int
	Skipped    int
	Error      string
}

type Download struct {
	RunID     string
	Year      int
	Day       int
	Bytes     int
	FetchedAt time.Time
}
