package ports

import (
	"context"
	"log/slog"

	"github.com/chatgpti/webapp-bot/pkg/botapi"
	"github.com/chatgpti/webapp-bot/pkg/tgrouter"
)

// BotServer runs the long polling loop and routes every update through the
// mounted routes. Handler errors are logged and swallowed here: a failed
// render must never take the bot down.
type BotServer struct {
	*botapi.Dispatcher
	router *tgrouter.Router
	logger *slog.Logger
}

func NewBotServer(token string, logger *slog.Logger) *BotServer {
	b := &BotServer{
		logger: logger.With(slog.String("component", "BotServer")),
	}

	api := botapi.NewAPI(token)
	b.router = tgrouter.NewRouter(api,
		tgrouter.WithNotFoundHandler(tgrouter.HandlerFunc(b.notFoundHandler)),
		tgrouter.WithErrorHandler(b.errorHandler),
		tgrouter.WithRecoverHandler(b.panicHandler),
	)
	b.Dispatcher = botapi.NewDispatcher(api, func(chatID int64) botapi.SessionHandler {
		return b.router
	})
	return b
}

func (b *BotServer) Mount(routes ...tgrouter.Route) *BotServer {
	b.router.Mount(routes...)
	return b
}

func (b *BotServer) Start(ctx context.Context) {
	go func() {
		err := b.Dispatcher.PollOptions(ctx, true, botapi.UpdateOptions{
			AllowedUpdates: []botapi.UpdateType{
				botapi.UpdateTypeMessage,
				botapi.UpdateTypeCallbackQuery,
			},
			Timeout: 120, // 2 minutes
		})
		if err != nil {
			b.logger.ErrorContext(ctx, "dispatcher", slog.Any("error", err))
		}
	}()
	go b.Dispatcher.ListenUpdates(ctx)
}

func (b *BotServer) errorHandler(ctx context.Context, u *tgrouter.Update, err error) {
	b.logger.ErrorContext(ctx, "error handler", slog.Any("error", err), slog.Any("update", u))
}

func (b *BotServer) notFoundHandler(ctx context.Context, u *tgrouter.Update) error {
	b.logger.WarnContext(ctx, "route not found", slog.Any("update", u))
	return nil
}

func (b *BotServer) panicHandler(u *tgrouter.Update, err error) {
	b.logger.Error("panic", slog.Any("error", err), slog.Any("update", u))
}
