package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/easayliu/http-folder/internal/infrastructure/config"
	"github.com/easayliu/http-folder/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client Telegram通知发送端
type Client struct {
	chatIDs []int64
	bot     *tgbotapi.BotAPI
}

// NewClient 连接Telegram Bot API
func NewClient(cfg *config.TelegramConfig) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName, "chats", len(cfg.ChatIDs))

	return &Client{
		chatIDs: cfg.ChatIDs,
		bot:     bot,
	}, nil
}

// Send 向所有配置的聊天发送文本，单个聊天失败不影响其余聊天
func (c *Client) Send(ctx context.Context, text string) error {
	if c.bot == nil {
		return errors.New("telegram bot not initialized")
	}

	text = cleanUTF8(text)

	var errs []error
	for _, chatID := range c.chatIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if _, err := c.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	return errors.Join(errs...)
}

// cleanUTF8 确保文本是有效的UTF-8编码
func cleanUTF8(text string) string {
	if !utf8.ValidString(text) {
		return strings.ToValidUTF8(text, "?")
	}
	return text
}
