package adventofcode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchInput(t *testing.T) {
	var gotPath, gotCookie, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.UserAgent()
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte("1721\n979\n366"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, WithBaseURL(srv.URL), WithUserAgent("test-agent"))
	body, err := c.FetchInput(context.Background(), 2020, 1, "abc123")
	if err != nil {
		t.Fatalf("FetchInput: %v", err)
	}
	if body != "1721\n979\n366" {
		t.Errorf("body = %q", body)
	}
	if gotPath != "/2020/day/1/input" {
		t.Errorf("path = %q", gotPath)
	}
	if gotCookie != "abc123" {
		t.Errorf("session cookie = %q", gotCookie)
	}
	if gotUA != "test-agent" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestFetchInputNon200(t *testing.T) {
	tests := []struct {
		status   int
		reason   string
		sentinel error
	}{
		{http.StatusNotFound, "Not Found", ErrNotFound},
		{http.StatusBadRequest, "Bad Request", ErrUnauthorized},
		{http.StatusTooManyRequests, "Too Many Requests", ErrRateLimited},
		{http.StatusInternalServerError, "Internal Server Error", nil},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := NewClient(5*time.Second, WithBaseURL(srv.URL))
		_, err := c.FetchInput(context.Background(), 2024, 9, "s")
		srv.Close()

		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("status %d: expected *FetchError, got %v", tt.status, err)
		}
		if fe.StatusCode != tt.status || fe.Reason != tt.reason {
			t.Errorf("status %d: got %d %q", tt.status, fe.StatusCode, fe.Reason)
		}
		if fe.Year != 2024 || fe.Day != 9 {
			t.Errorf("status %d: puzzle = %d/%d", tt.status, fe.Year, fe.Day)
		}
		if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
			t.Errorf("status %d: expected errors.Is %v", tt.status, tt.sentinel)
		}
		if !strings.Contains(err.Error(), tt.reason) {
			t.Errorf("status %d: message %q lacks reason", tt.status, err.Error())
		}
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{Year: 2015, Day: 1, StatusCode: 404, Reason: "Not Found"}
	want := "could not get input: server responded with 404: Not Found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestReasonPhraseFallback(t *testing.T) {
	resp := &http.Response{StatusCode: 503, Status: ""}
	if got := reasonPhrase(resp); got != "Service Unavailable" {
		t.Errorf("reasonPhrase = %q", got)
	}
	resp = &http.Response{StatusCode: 418, Status: "418 Short And Stout"}
	if got := reasonPhrase(resp); got != "Short And Stout" {
		t.Errorf("reasonPhrase = %q", got)
	}
}

func TestFetchInputCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(5*time.Second, WithBaseURL(srv.URL))
	if _, err := c.FetchInput(ctx, 2020, 1, "s"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestNewClientUsesPlainHTTPClient(t *testing.T) {
	c := NewClient(7 * time.Second)
	if c.httpClient.Timeout != 7*time.Second {
		t.Errorf("timeout = %v", c.httpClient.Timeout)
	}
	if c.httpClient.Transport != nil {
		t.Errorf("expected default transport, got %T", c.httpClient.Transport)
	}
}
