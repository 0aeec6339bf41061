// Package botport is the outbound chat boundary: flow handlers talk to this
// interface, adapters (Telegram, fake) implement it. Adapter failures come
// back as *BotError with a normalized code so callers can branch on behavior
// instead of transport-specific error strings.
package botport

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// BotMessage identifies a message an adapter has sent or edited.
type BotMessage struct {
	ChatID    int64
	MessageID int
	Transport string
	Payload   string
	Meta      map[string]string
}

// BotError wraps an adapter failure with a normalized code and retry hint.
type BotError struct {
	Op         string
	Code       string
	RetryAfter time.Duration
	Wrapped    error
}

func (e *BotError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *BotError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

// NewBotError builds a BotError preserving the wrapped error.
func NewBotError(op, code string, err error) *BotError {
	return &BotError{Op: op, Code: code, Wrapped: err}
}

// IsCode reports whether err is a BotError carrying the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var be *BotError
	if errors.As(err, &be) {
		return be != nil && be.Code == code
	}
	return false
}

// BotPort abstracts outbound chat operations.
type BotPort interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) (BotMessage, error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, markup interface{}) (BotMessage, error)
	AnswerCallback(ctx context.Context, callbackID string, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}
