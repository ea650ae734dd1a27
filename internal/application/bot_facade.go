package application

import (
	"context"
	"strings"

	"meteobolt-bot/internal/domain/model"
)

// WeatherUseCaseIface is the minimal lookup surface the facade needs.
type WeatherUseCaseIface interface {
	Lookup(ctx context.Context, city string) model.QueryResult
}

// InlineErrorID is the result id used for every failed inline lookup.
const InlineErrorID = "error"

// InlineArticle is a platform-neutral inline result.
type InlineArticle struct {
	ID          string
	Title       string
	Description string
	Body        string
}

// BotFacade composes the weather lookup and message composer into bot replies.
// Methods return text so the Telegram adapter just forwards it; the QueryResult
// is handed back for logging only.
type BotFacade struct {
	Weather  WeatherUseCaseIface
	Composer *Composer
}

func NewBotFacade(weather WeatherUseCaseIface, composer *Composer) *BotFacade {
	return &BotFacade{Weather: weather, Composer: composer}
}

func (b *BotFacade) HandleStart(botUsername string) string {
	return b.Composer.Greeting(botUsername)
}

// HandleCity looks up the trimmed text as a city and returns the detailed reply
// or the failure text.
func (b *BotFacade) HandleCity(ctx context.Context, text string) (string, model.QueryResult) {
	res := b.Weather.Lookup(ctx, strings.TrimSpace(text))
	if !res.OK() {
		return b.Composer.Failure(res.Failure), res
	}
	return b.Composer.Detailed(*res.Reading), res
}

// HandleInline returns no articles for a blank query without a lookup, and
// exactly one article otherwise.
func (b *BotFacade) HandleInline(ctx context.Context, query string) ([]InlineArticle, model.QueryResult) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.QueryResult{}
	}

	res := b.Weather.Lookup(ctx, query)
	if !res.OK() {
		text := b.Composer.Failure(res.Failure)
		return []InlineArticle{{
			ID:          InlineErrorID,
			Title:       text,
			Description: b.Composer.InlineErrorDescription(),
			Body:        text,
		}}, res
	}

	r := *res.Reading
	return []InlineArticle{{
		ID:          r.City,
		Title:       b.Composer.InlineTitle(r),
		Description: b.Composer.InlineSummary(r),
		Body:        b.Composer.Compact(r),
	}}, res
}
