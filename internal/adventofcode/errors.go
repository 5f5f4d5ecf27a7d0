package adventofcode

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	ErrUnauthorized = errors.New("session cookie rejected")
	ErrNotFound     = errors.New("puzzle input not found")
	ErrRateLimited  = errors.New("rate limited by server")
)

// FetchError reports a non-200 answer for a puzzle input
type FetchError struct {
	Year       int
	Day        int
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not get input: server responded with %d: %s", e.StatusCode, e.Reason)
}

// Unwrap maps the status onto one of the common errors, if any
func (e *FetchError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		// a malformed or expired session cookie gets a 400
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// NewFetchError builds a FetchError from the response status line
func NewFetchError(year, day int, resp *http.Response) error {
	return &FetchError{
		Year:       year,
		Day:        day,
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
	}
}

// reasonPhrase strips the numeric code from a status line like "404 Not Found"
func reasonPhrase(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if len(resp.Status) > len(prefix) && resp.Status[:len(prefix)] == prefix {
		return resp.Status[len(prefix):]
	}
	return http.StatusText(resp.StatusCode)
}
