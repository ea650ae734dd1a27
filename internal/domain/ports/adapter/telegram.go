// File: internal/domain/ports/adapter/telegram.go
package adapter

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// TelegramSender is the subset of *tgbotapi.BotAPI the update router needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
