// Package telegramadapter implements botport.BotPort over the Telegram
// client, normalizing API failures into botport error codes.
package telegramadapter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"driverprofilebot/pkg/bot"
	"driverprofilebot/pkg/ports/botport"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type telegramClient interface {
	SendMessage(chatID int64, text string, markup interface{}) (tgbotapi.Message, error)
	EditMessageText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	DeleteMessage(chatID int64, messageID int) error
}

// Adapter satisfies botport.BotPort on top of the Telegram client.
type Adapter struct {
	client telegramClient
	log    *zap.Logger
}

var _ telegramClient = (*bot.Client)(nil)
var _ botport.BotPort = (*Adapter)(nil)

func New(client telegramClient, log *zap.Logger) (*Adapter, error) {
	if client == nil {
		return nil, fmt.Errorf("telegramadapter: client is nil")
	}
	return &Adapter{client: client, log: log}, nil
}

func (a *Adapter) SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) (botport.BotMessage, error) {
	if err := ctx.Err(); err != nil {
		return botport.BotMessage{}, wrapContextError("send_message", err)
	}
	msg, err := a.client.SendMessage(chatID, text, markup)
	if err != nil {
		return botport.BotMessage{}, a.wrapAndLog("send_message", chatID, 0, err)
	}
	return toBotMessage(msg), nil
}

func (a *Adapter) EditMessage(ctx context.Context, chatID int64, messageID int, text string, markup interface{}) (botport.BotMessage, error) {
	if err := ctx.Err(); err != nil {
		return botport.BotMessage{}, wrapContextError("edit_message", err)
	}
	inline, err := toInlineKeyboard(markup)
	if err != nil {
		return botport.BotMessage{}, botport.NewBotError("edit_message", "bad_payload", err)
	}
	msg, err := a.client.EditMessageText(chatID, messageID, text, inline)
	if err != nil {
		return botport.BotMessage{}, a.wrapAndLog("edit_message", chatID, messageID, err)
	}
	return toBotMessage(msg), nil
}

func (a *Adapter) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	if err := ctx.Err(); err != nil {
		return wrapContextError("answer_callback", err)
	}
	if err := a.client.AnswerCallback(callbackID, text); err != nil {
		return a.wrapAndLog("answer_callback", 0, 0, err)
	}
	return nil
}

func (a *Adapter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return wrapContextError("delete_message", err)
	}
	if err := a.client.DeleteMessage(chatID, messageID); err != nil {
		return a.wrapAndLog("delete_message", chatID, messageID, err)
	}
	return nil
}

func (a *Adapter) wrapAndLog(op string, chatID int64, messageID int, err error) error {
	wrapped := wrapTelegramError(op, err)
	a.log.Warn("bot operation failed",
		zap.String("op", op),
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", messageID),
		zap.String("code", errorCode(wrapped)),
		zap.Error(err))
	return wrapped
}

func toInlineKeyboard(markup interface{}) (*tgbotapi.InlineKeyboardMarkup, error) {
	switch v := markup.(type) {
	case nil:
		return nil, nil
	case tgbotapi.InlineKeyboardMarkup:
		return &v, nil
	case *tgbotapi.InlineKeyboardMarkup:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported markup type %T", markup)
	}
}

func toBotMessage(msg tgbotapi.Message) botport.BotMessage {
	var chatID int64
	if msg.Chat != nil {
		chatID = msg.Chat.ID
	}
	return botport.BotMessage{
		ChatID:    chatID,
		MessageID: msg.MessageID,
		Transport: "telegram",
		Payload:   msg.Text,
	}
}

func wrapContextError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return &botport.BotError{Op: op, Code: "context_canceled", Wrapped: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &botport.BotError{Op: op, Code: "context_deadline", Wrapped: err}
	}
	return &botport.BotError{Op: op, Code: "context_error", Wrapped: err}
}

func wrapTelegramError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(op, err)
	}
	code, retry := classifyTelegramError(err)
	return &botport.BotError{Op: op, Code: code, RetryAfter: retry, Wrapped: err}
}

var retryAfterRegex = regexp.MustCompile(`(?i)retry after (\d+)`)

func classifyTelegramError(err error) (string, time.Duration) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "message is not modified"):
		return "message_not_modified", 0
	case strings.Contains(msg, "message to delete not found"):
		return "message_not_found", 0
	case strings.Contains(msg, "too many requests"):
		return "rate_limited", extractRetryAfter(msg)
	case strings.Contains(msg, "bad request"):
		return "bad_request", 0
	case strings.Contains(msg, "forbidden"):
		return "forbidden", 0
	default:
		return "unknown", 0
	}
}

func extractRetryAfter(msg string) time.Duration {
	matches := retryAfterRegex.FindStringSubmatch(msg)
	if len(matches) != 2 {
		return 0
	}
	d, err := time.ParseDuration(matches[1] + "s")
	if err != nil {
		return 0
	}
	return d
}

func errorCode(err error) string {
	var be *botport.BotError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
