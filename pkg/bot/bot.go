package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Client wraps the Telegram Bot API with the operations the flow layer needs.
type Client struct {
	api  *tgbotapi.BotAPI
	log  *zap.Logger
	Self *tgbotapi.User
}

func NewClient(token string, log *zap.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token cannot be empty")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot api instance: %w", err)
	}
	api.Debug = false

	self, err := api.GetMe()
	if err != nil {
		return nil, fmt.Errorf("verifying bot token with GetMe(): %w", err)
	}
	log.Info("bot token verified", zap.String("bot_username", self.UserName))

	return &Client{api: api, log: log, Self: &self}, nil
}

func (c *Client) SendMessage(chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = ""
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("sending message: %w", err)
	}
	return sent, nil
}

func (c *Client) EditMessageText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	if messageID == 0 {
		c.log.Warn("edit requested with zero message id, sending instead",
			zap.Int64("chat_id", chatID))
		return c.SendMessage(chatID, text, markup)
	}

	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = ""
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		// Re-rendering an identical keyboard is routine during toggling.
		if err.Error() == "Bad Request: message is not modified: specified new message content and reply markup are exactly the same as a current content and reply markup of the message" {
			return tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}}, nil
		}
		return tgbotapi.Message{}, fmt.Errorf("editing message %d: %w", messageID, err)
	}
	return sent, nil
}

func (c *Client) AnswerCallback(callbackID string, text string) error {
	if callbackID == "" {
		return fmt.Errorf("callbackID cannot be empty")
	}
	cfg := tgbotapi.NewCallback(callbackID, text)
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("answering callback query %s: %w", callbackID, err)
	}
	return nil
}

func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	cfg := tgbotapi.NewDeleteMessage(chatID, messageID)
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("deleting message %d: %w", messageID, err)
	}
	return nil
}

func (c *Client) GetUpdatesChan(timeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	return c.api.GetUpdatesChan(u)
}

func (c *Client) StopReceivingUpdates() {
	c.api.StopReceivingUpdates()
}
