package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"meteobolt-bot/internal/application"
	"meteobolt-bot/internal/config"
	"meteobolt-bot/internal/domain/model"
	"meteobolt-bot/internal/domain/ports/adapter"
	"meteobolt-bot/internal/infra/logging"
	"meteobolt-bot/internal/infra/metrics"
	red "meteobolt-bot/internal/infra/redis"
	"meteobolt-bot/internal/infra/worker"
)

// RateLimiter is satisfied by *redis.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Bot routes updates to the facade and delivers the replies. Handlers never
// log; HandleUpdate is the only place that does.
type Bot struct {
	sender adapter.TelegramSender
	facade *application.BotFacade
	pool   *worker.Pool
	log    *zerolog.Logger

	username        string
	inlineCacheTime int
	thumbURL        string

	limiter   RateLimiter
	rateLimit int
}

func NewBot(sender adapter.TelegramSender, facade *application.BotFacade, pool *worker.Pool, botCfg config.BotConfig, inlineCfg config.InlineConfig, logger *zerolog.Logger) (*Bot, error) {
	if sender == nil {
		return nil, errors.New("telegram sender is nil")
	}
	if facade == nil || facade.Composer == nil || facade.Weather == nil {
		return nil, errors.New("bot facade is incomplete")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Bot{
		sender:          sender,
		facade:          facade,
		pool:            pool,
		log:             logger,
		username:        botCfg.Username,
		inlineCacheTime: inlineCfg.CacheTime,
		thumbURL:        inlineCfg.ThumbURL,
	}, nil
}

// WithRateLimiter caps weather lookups per user per minute. limit <= 0 disables it.
func (b *Bot) WithRateLimiter(l RateLimiter, limit int) *Bot {
	if l != nil && limit > 0 {
		b.limiter = l
		b.rateLimit = limit
	}
	return b
}

// Enqueue hands the update to the worker pool without waiting for it to be
// handled. Only the trace id of ctx travels with the task; the request that
// delivered the update is gone by the time a worker picks it up.
func (b *Bot) Enqueue(ctx context.Context, update tgbotapi.Update) error {
	if b.pool == nil {
		return worker.ErrPoolStopped
	}
	traceID, _ := logging.TraceIDFrom(ctx)
	return b.pool.Submit(func(taskCtx context.Context) error {
		if traceID != "" {
			taskCtx = logging.WithTraceID(taskCtx, traceID)
		}
		b.HandleUpdate(taskCtx, update)
		return nil
	})
}

// HandleUpdate processes one update end to end. Failures are logged and
// counted here and never returned, so one bad update cannot affect another.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	kind := Classify(update)
	metrics.IncTelegramUpdate(kind.String())

	if _, ok := logging.TraceIDFrom(ctx); !ok {
		ctx = logging.WithTraceID(ctx, uuid.NewString())
	}
	ctx = logging.WithUpdateID(ctx, update.UpdateID)
	if chatID, ok := chatOf(update); ok {
		ctx = logging.WithChatID(ctx, chatID)
	}
	log := logging.With(ctx, b.log)

	defer func() {
		if rec := recover(); rec != nil {
			metrics.IncTelegramHandlerError(kind.String())
			log.Error().Str("kind", kind.String()).Interface("panic", rec).Msg("update handler panicked")
		}
	}()

	var resp Response
	switch kind {
	case KindCommand:
		resp = b.handleCommand(ctx, update.Message)
	case KindText:
		resp = b.handleText(ctx, update.Message)
	case KindInline:
		resp = b.handleInline(ctx, update.InlineQuery)
	default:
		log.Debug().Msg("ignoring unsupported update")
		return
	}

	b.report(log, kind, resp)

	if resp.Reply == nil {
		return
	}
	if err := b.deliver(resp.Reply); err != nil {
		metrics.IncTelegramHandlerError(kind.String())
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to deliver reply")
	}
}

func (b *Bot) report(log *zerolog.Logger, kind UpdateKind, resp Response) {
	switch resp.Failure {
	case model.FailureNone:
		return
	case model.FailureUnexpected:
		metrics.IncTelegramHandlerError(kind.String())
		log.Error().Err(resp.Report).Str("kind", kind.String()).Str("failure", resp.Failure.String()).Msg("weather lookup failed unexpectedly")
	default:
		log.Info().Err(resp.Report).Str("kind", kind.String()).Str("failure", resp.Failure.String()).Msg("weather lookup failed")
	}
}

// deliver sends messages with Send. Inline answers go through Request because
// Telegram replies to them with a bare boolean.
func (b *Bot) deliver(c tgbotapi.Chattable) error {
	switch c.(type) {
	case tgbotapi.InlineConfig, *tgbotapi.InlineConfig:
		_, err := b.sender.Request(c)
		return err
	default:
		_, err := b.sender.Send(c)
		return err
	}
}

func (b *Bot) allow(ctx context.Context, userID int64, kind UpdateKind) bool {
	if b.limiter == nil {
		return true
	}
	ok, err := b.limiter.Allow(ctx, red.UserLookupKey(userID, kind.String()), b.rateLimit, time.Minute)
	if err != nil {
		// fail open: a redis outage must not silence the bot
		logging.With(ctx, b.log).Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	if !ok {
		metrics.IncRateLimitTriggered()
	}
	return ok
}

// chatOf avoids Update.FromChat, which dereferences CallbackQuery.Message.
func chatOf(u tgbotapi.Update) (int64, bool) {
	switch {
	case u.Message != nil && u.Message.Chat != nil:
		return u.Message.Chat.ID, true
	case u.EditedMessage != nil && u.EditedMessage.Chat != nil:
		return u.EditedMessage.Chat.ID, true
	case u.InlineQuery != nil && u.InlineQuery.From != nil:
		return u.InlineQuery.From.ID, true
	default:
		return 0, false
	}
}

// StartPolling feeds long-polled updates into the same pool the webhook uses.
// It returns when ctx is cancelled.
func StartPolling(ctx context.Context, api *tgbotapi.BotAPI, b *Bot) error {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook before polling: %w", err)
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.Enqueue(ctx, up); err != nil {
				metrics.IncTelegramHandlerError("enqueue")
				b.log.Warn().Err(err).Int("update_id", up.UpdateID).Msg("dropping polled update")
			}
		}
	}
}

// SetWebhook registers endpoint with Telegram. Updates queued while the bot
// was down are dropped rather than replayed.
func SetWebhook(api adapter.TelegramSender, endpoint string) error {
	wh, err := tgbotapi.NewWebhook(endpoint)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	wh.DropPendingUpdates = true
	if _, err := api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
