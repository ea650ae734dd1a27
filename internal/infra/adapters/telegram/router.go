package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meteobolt-bot/internal/application"
	"meteobolt-bot/internal/domain/model"
)

// UpdateKind is the routing tag for an inbound update.
type UpdateKind int

const (
	KindUnsupported UpdateKind = iota
	KindCommand
	KindText
	KindInline
)

func (k UpdateKind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindText:
		return "text"
	case KindInline:
		return "inline"
	default:
		return "unsupported"
	}
}

// Classify decides which handler owns the update. Only /start and /help are
// commands; any other command, edited message or non-text message is unsupported.
func Classify(u tgbotapi.Update) UpdateKind {
	switch {
	case u.InlineQuery != nil:
		return KindInline
	case u.Message == nil || u.Message.Chat == nil:
		return KindUnsupported
	case u.Message.IsCommand():
		switch u.Message.Command() {
		case "start", "help":
			return KindCommand
		}
		return KindUnsupported
	case strings.TrimSpace(u.Message.Text) != "":
		return KindText
	default:
		return KindUnsupported
	}
}

// Response is what a handler wants done. Reply is nil when nothing is sent.
// Failure and Report are for the outer layer to log; they never reach the user.
type Response struct {
	Reply   tgbotapi.Chattable
	Failure model.FailureKind
	Report  error
}

func fromResult(reply tgbotapi.Chattable, res model.QueryResult) Response {
	return Response{Reply: reply, Failure: res.Failure, Report: res.Err}
}

func (b *Bot) handleCommand(_ context.Context, msg *tgbotapi.Message) Response {
	return Response{Reply: b.replyTo(msg, b.facade.HandleStart(b.username))}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) Response {
	if msg.From != nil && !b.allow(ctx, msg.From.ID, KindText) {
		return Response{Reply: b.replyTo(msg, b.facade.Composer.RateLimited())}
	}
	text, res := b.facade.HandleCity(ctx, msg.Text)
	return fromResult(b.replyTo(msg, text), res)
}

func (b *Bot) handleInline(ctx context.Context, q *tgbotapi.InlineQuery) Response {
	if strings.TrimSpace(q.Query) == "" {
		return Response{}
	}
	if q.From != nil && !b.allow(ctx, q.From.ID, KindInline) {
		text := b.facade.Composer.RateLimited()
		article := tgbotapi.NewInlineQueryResultArticle(application.InlineErrorID, text, text)
		return Response{Reply: tgbotapi.InlineConfig{
			InlineQueryID: q.ID,
			Results:       []interface{}{article},
			IsPersonal:    true,
		}}
	}

	articles, res := b.facade.HandleInline(ctx, q.Query)
	results := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		article := tgbotapi.NewInlineQueryResultArticle(a.ID, a.Title, a.Body)
		article.Description = a.Description
		if res.OK() {
			article.ThumbURL = b.thumbURL
		}
		results = append(results, article)
	}
	return fromResult(tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       results,
		CacheTime:     b.inlineCacheTime,
	}, res)
}

func (b *Bot) replyTo(msg *tgbotapi.Message, text string) tgbotapi.MessageConfig {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	return out
}
