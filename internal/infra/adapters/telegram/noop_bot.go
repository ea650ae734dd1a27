package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"meteobolt-bot/internal/domain/ports/adapter"
	"meteobolt-bot/internal/infra/logging"
)

var _ adapter.TelegramSender = (*NoopSender)(nil)

// NoopSender implements adapter.TelegramSender for local/dev runs without a token.
// It logs outgoing payloads instead of calling Telegram.
type NoopSender struct {
	log *zerolog.Logger
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoopSender{log: logger}
}

func (n *NoopSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	n.logPayload(c)
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		return tgbotapi.Message{Text: m.Text, Chat: &tgbotapi.Chat{ID: m.ChatID}}, nil
	}
	return tgbotapi.Message{}, nil
}

func (n *NoopSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	n.logPayload(c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (n *NoopSender) logPayload(c tgbotapi.Chattable) {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		n.log.Info().Int64("chat_id", v.ChatID).Str("text", v.Text).Msg("[noop-telegram] send message")
	case tgbotapi.InlineConfig:
		n.log.Info().Str("inline_query_id", v.InlineQueryID).Int("results", len(v.Results)).Int("cache_time", v.CacheTime).Msg("[noop-telegram] answer inline query")
	case tgbotapi.WebhookConfig:
		n.log.Info().Msg("[noop-telegram] set webhook")
	default:
		n.log.Info().Str("type", typeName(c)).Msg("[noop-telegram] request")
	}
}

func typeName(c tgbotapi.Chattable) string {
	return fmt.Sprintf("%T", c)
}
