package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender delivers alerts to the owner's chat.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSender(bot *tgbotapi.BotAPI, chatID int64) *TelegramSender {
	return &TelegramSender{bot: bot, chatID: chatID}
}

// Send posts the alert as a plain message.
func (s *TelegramSender) Send(title, body string) error {
	text := "⏰ " + title
	if body != "" {
		text += "\n" + body
	}
	_, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, text))
	return err
}

// Probe verifies the bot can see the owner's chat. This is the closest
// Telegram analog of requesting notification permission from the platform.
func (s *TelegramSender) Probe(_ context.Context) error {
	_, err := s.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: s.chatID},
	})
	return err
}
