// Package notify sends a short summary of a fetch run to a chat.
package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aoc-inputs/internal/models"
)

type Report struct {
	Downloaded []models.Puzzle
	Skipped    int
	Err        error
	At         time.Time
}

type Notifier interface {
	Notify(r Report) error
}

// Nop is used when no chat is configured.
type Nop struct{}

func (Nop) Notify(Report) error { return nil }

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token, chatID string) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewTelegramWithEndpoint is NewTelegram against a non-default Bot API host.
func NewTelegramWithEndpoint(token, chatID, endpoint string) (*Telegram, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Telegram{api: api, chatID: id}, nil
}

func (t *Telegram) Notify(r Report) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatReport(r))
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// FromEnv returns a Telegram notifier when both token and chat id are set,
// and Nop otherwise. Setup errors are logged and also yield Nop.
func FromEnv(token, chatID string) Notifier {
	if token == "" || chatID == "" {
		return Nop{}
	}
	t, err := NewTelegram(token, chatID)
	if err != nil {
		log.Printf("[notify] source=telegram status=disabled error=%v", err)
		return Nop{}
	}
	log.Printf("[notify] source=telegram status=ready account=%s", t.api.Self.UserName)
	return t
}

func FormatReport(r Report) string {
	at := r.At
	if at.IsZero() {
		at = time.Now()
	}

	var b strings.Builder
	switch {
	case r.Err != nil:
		b.WriteString("🎄 Puzzle input fetch FAILED\n\n")
	case len(r.Downloaded) == 0:
		b.WriteString("🎄 Puzzle inputs up to date\n\n")
	default:
		b.WriteString("🎄 New puzzle inputs\n\n")
	}

	for _, p := range r.Downloaded {
		fmt.Fprintf(&b, "⭐ %d day %d\n", p.Year, p.Day)
	}
	if len(r.Downloaded) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Downloaded: %d | Cached: %d\n", len(r.Downloaded), r.Skipped)
	if r.Err != nil {
		fmt.Fprintf(&b, "Error: %v\n", r.Err)
	}
	fmt.Fprintf(&b, "\nUpdated: %s", at.UTC().Format("2006-01-02 15:04 UTC"))
	return b.String()
}
